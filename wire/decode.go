package wire

import (
	"fmt"
	"time"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/Enterprise-CMCS/managed-care-review-sub003/healthplan"
)

// Decode parses a wire blob back into form data.
//
// Parse failures return *MalformedError. A blob that parses but cannot
// represent any valid lifecycle state returns *SchemaViolationError listing
// every offending field. Unknown field numbers are skipped and fields
// missing from old blobs decode to their absent values, so schema growth in
// either direction never breaks stored data.
func (c *Codec) Decode(data []byte) (healthplan.FormData, error) {
	d := &decoder{}
	var fd healthplan.FormData
	var formatName string
	var formatVersion uint64

	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return healthplan.FormData{}, malformed("invalid field tag: %v", protowire.ParseError(n))
		}
		b = b[n:]

		var err error
		switch {
		case num == fieldFormatName && typ == protowire.BytesType:
			formatName, b, err = consumeString(b)
		case num == fieldFormatVersion && typ == protowire.VarintType:
			formatVersion, b, err = consumeVarint(b)
		case num == fieldID && typ == protowire.BytesType:
			fd.ID, b, err = consumeString(b)
		case num == fieldStatus && typ == protowire.VarintType:
			var ord uint64
			ord, b, err = consumeVarint(b)
			if err == nil {
				fd.Status = decodeEnum(d, statusTable, "status", ord)
			}
		case num == fieldCreatedAt && typ == protowire.BytesType:
			fd.CreatedAt, b, err = consumeTimestamp(b)
		case num == fieldUpdatedAt && typ == protowire.BytesType:
			fd.UpdatedAt, b, err = consumeTimestamp(b)
		case num == fieldStateCode && typ == protowire.BytesType:
			fd.StateCode, b, err = consumeString(b)
		case num == fieldStateNumber && typ == protowire.VarintType:
			var v uint64
			v, b, err = consumeVarint(b)
			fd.StateNumber = int(v)
		case num == fieldProgramID && typ == protowire.BytesType:
			var s string
			s, b, err = consumeString(b)
			if err == nil && s != "" {
				fd.ProgramIDs = append(fd.ProgramIDs, s)
			}
		case num == fieldSubmissionType && typ == protowire.VarintType:
			var ord uint64
			ord, b, err = consumeVarint(b)
			if err == nil {
				fd.SubmissionType = decodeEnum(d, submissionTypeTable, "submissionType", ord)
			}
		case num == fieldSubmissionDescription && typ == protowire.BytesType:
			fd.SubmissionDescription, b, err = consumeString(b)
		case num == fieldStateContact && typ == protowire.BytesType:
			var msg []byte
			msg, b, err = consumeBytes(b)
			if err == nil {
				var sc healthplan.StateContact
				sc, err = decodeStateContact(msg)
				if err == nil {
					fd.StateContacts = append(fd.StateContacts, sc)
				}
			}
		case num == fieldContractType && typ == protowire.VarintType:
			var ord uint64
			ord, b, err = consumeVarint(b)
			if err == nil {
				fd.ContractType = decodeEnum(d, contractTypeTable, "contractType", ord)
			}
		case num == fieldContractExecutionStatus && typ == protowire.VarintType:
			var ord uint64
			ord, b, err = consumeVarint(b)
			if err == nil {
				fd.ContractExecutionStatus = decodeEnum(d, executionStatusTable, "contractExecutionStatus", ord)
			}
		case num == fieldContractDateStart && typ == protowire.BytesType:
			fd.ContractDateStart, b, err = consumeDate(b)
		case num == fieldContractDateEnd && typ == protowire.BytesType:
			fd.ContractDateEnd, b, err = consumeDate(b)
		case num == fieldManagedCareEntity && typ == protowire.VarintType:
			var ord uint64
			ord, b, err = consumeVarint(b)
			if err == nil {
				path := fmt.Sprintf("managedCareEntities[%d]", len(fd.ManagedCareEntities))
				if v := decodeEnum(d, entityTable, path, ord); v != "" {
					fd.ManagedCareEntities = append(fd.ManagedCareEntities, v)
				}
			}
		case num == fieldFederalAuthority && typ == protowire.VarintType:
			var ord uint64
			ord, b, err = consumeVarint(b)
			if err == nil {
				path := fmt.Sprintf("federalAuthorities[%d]", len(fd.FederalAuthorities))
				if v := decodeEnum(d, authorityTable, path, ord); v != "" {
					fd.FederalAuthorities = append(fd.FederalAuthorities, v)
				}
			}
		case num == fieldContractAmendmentInfo && typ == protowire.BytesType:
			var msg []byte
			msg, b, err = consumeBytes(b)
			if err == nil {
				fd.ContractAmendmentInfo, err = decodeContractAmendment(msg)
			}
		case num == fieldDocument && typ == protowire.BytesType:
			var msg []byte
			msg, b, err = consumeBytes(b)
			if err == nil {
				var doc healthplan.Document
				path := fmt.Sprintf("documents[%d]", len(fd.Documents))
				doc, err = decodeDocument(d, msg, path)
				if err == nil {
					fd.Documents = append(fd.Documents, doc)
				}
			}
		case num == fieldRateType && typ == protowire.VarintType:
			var ord uint64
			ord, b, err = consumeVarint(b)
			if err == nil {
				fd.RateType = decodeEnum(d, rateTypeTable, "rateType", ord)
			}
		case num == fieldRateDateStart && typ == protowire.BytesType:
			fd.RateDateStart, b, err = consumeDate(b)
		case num == fieldRateDateEnd && typ == protowire.BytesType:
			fd.RateDateEnd, b, err = consumeDate(b)
		case num == fieldRateDateCertified && typ == protowire.BytesType:
			fd.RateDateCertified, b, err = consumeDate(b)
		case num == fieldRateAmendmentInfo && typ == protowire.BytesType:
			var msg []byte
			msg, b, err = consumeBytes(b)
			if err == nil {
				fd.RateAmendmentInfo, err = decodeRateAmendment(msg)
			}
		case num == fieldActuaryContact && typ == protowire.BytesType:
			var msg []byte
			msg, b, err = consumeBytes(b)
			if err == nil {
				var ac healthplan.ActuaryContact
				path := fmt.Sprintf("actuaryContacts[%d]", len(fd.ActuaryContacts))
				ac, err = decodeActuaryContact(d, msg, path)
				if err == nil {
					fd.ActuaryContacts = append(fd.ActuaryContacts, ac)
				}
			}
		case num == fieldActuaryCommunication && typ == protowire.VarintType:
			var ord uint64
			ord, b, err = consumeVarint(b)
			if err == nil {
				fd.ActuaryCommunicationPreference = decodeEnum(d, commTable, "actuaryCommunicationPreference", ord)
			}
		default:
			// Unknown or re-typed field: skip the value for forward
			// compatibility with newer writers.
			m := protowire.ConsumeFieldValue(num, typ, b)
			if m < 0 {
				return healthplan.FormData{}, malformed("invalid value for field %d: %v", num, protowire.ParseError(m))
			}
			b = b[m:]
		}
		if err != nil {
			return healthplan.FormData{}, err
		}
	}

	c.checkHeader(d, formatName, formatVersion)
	d.validate(&fd)
	if len(d.violations) > 0 {
		return healthplan.FormData{}, &SchemaViolationError{Violations: d.violations}
	}
	return fd, nil
}

type decoder struct {
	violations []FieldViolation
}

func (d *decoder) violation(path, format string, args ...any) {
	d.violations = append(d.violations, FieldViolation{Path: path, Reason: fmt.Sprintf(format, args...)})
}

// checkHeader verifies the format-name/version pair. A recognized name with
// a newer version is logged, never failed, so readers keep working during a
// rolling deployment.
func (c *Codec) checkHeader(d *decoder, name string, version uint64) {
	switch {
	case name == "":
		d.violation("formatName", "absent")
	case name != FormatName:
		d.violation("formatName", "unrecognized format %q", name)
	case version == 0:
		d.violation("formatVersion", "absent")
	case version > FormatVersion:
		c.logger.Warn("decoding blob written by a newer schema",
			"format", name,
			"blobVersion", version,
			"supportedVersion", FormatVersion)
	}
}

// validate runs the post-decode checks that stand in for wire-level
// required fields. Only fields whose absence makes the blob unable to
// represent any lifecycle state are checked here; draft completeness is the
// submission package's concern.
func (d *decoder) validate(fd *healthplan.FormData) {
	if fd.ID == "" {
		d.violation("id", "absent")
	}
	if fd.Status == "" {
		d.violation("status", "absent or unrecognized; want %q or %q", healthplan.StatusDraft, healthplan.StatusSubmitted)
	}
	if fd.StateCode == "" {
		d.violation("stateCode", "absent")
	}
	if fd.StateNumber <= 0 {
		d.violation("stateNumber", "absent")
	}
}

// decodeEnum maps a wire ordinal through its table. Ordinal 0 is the absent
// sentinel and yields the zero value silently; an ordinal the table does
// not know is recorded as a schema violation.
func decodeEnum[E ~string](d *decoder, t enumTable[E], path string, ord uint64) E {
	if ord == 0 {
		return ""
	}
	v, ok := t.variant(ord)
	if !ok {
		d.violation(path, "unknown %s ordinal %d", t.name, ord)
		return ""
	}
	return v
}

func decodeStateContact(b []byte) (healthplan.StateContact, error) {
	var sc healthplan.StateContact
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return sc, malformed("state contact: invalid tag: %v", protowire.ParseError(n))
		}
		b = b[n:]
		var err error
		switch {
		case num == contactFieldName && typ == protowire.BytesType:
			sc.Name, b, err = consumeString(b)
		case num == contactFieldTitle && typ == protowire.BytesType:
			sc.Title, b, err = consumeString(b)
		case num == contactFieldEmail && typ == protowire.BytesType:
			sc.Email, b, err = consumeString(b)
		default:
			b, err = skipField(num, typ, b)
		}
		if err != nil {
			return sc, err
		}
	}
	return sc, nil
}

func decodeActuaryContact(d *decoder, b []byte, path string) (healthplan.ActuaryContact, error) {
	var ac healthplan.ActuaryContact
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return ac, malformed("actuary contact: invalid tag: %v", protowire.ParseError(n))
		}
		b = b[n:]
		var err error
		switch {
		case num == actuaryFieldName && typ == protowire.BytesType:
			ac.Name, b, err = consumeString(b)
		case num == actuaryFieldTitle && typ == protowire.BytesType:
			ac.Title, b, err = consumeString(b)
		case num == actuaryFieldEmail && typ == protowire.BytesType:
			ac.Email, b, err = consumeString(b)
		case num == actuaryFieldFirm && typ == protowire.VarintType:
			var ord uint64
			ord, b, err = consumeVarint(b)
			if err == nil {
				ac.ActuarialFirm = decodeEnum(d, firmTable, path+".actuarialFirm", ord)
			}
		case num == actuaryFieldFirmOther && typ == protowire.BytesType:
			ac.ActuarialFirmOther, b, err = consumeString(b)
		default:
			b, err = skipField(num, typ, b)
		}
		if err != nil {
			return ac, err
		}
	}
	return ac, nil
}

func decodeDocument(d *decoder, b []byte, path string) (healthplan.Document, error) {
	var doc healthplan.Document
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return doc, malformed("document: invalid tag: %v", protowire.ParseError(n))
		}
		b = b[n:]
		var err error
		switch {
		case num == docFieldName && typ == protowire.BytesType:
			doc.Name, b, err = consumeString(b)
		case num == docFieldS3URL && typ == protowire.BytesType:
			doc.S3URL, b, err = consumeString(b)
		case num == docFieldSHA256 && typ == protowire.BytesType:
			doc.SHA256, b, err = consumeString(b)
		case num == docFieldCategory && typ == protowire.VarintType:
			var ord uint64
			ord, b, err = consumeVarint(b)
			if err == nil {
				catPath := fmt.Sprintf("%s.categories[%d]", path, len(doc.Categories))
				if v := decodeEnum(d, docCategoryTable, catPath, ord); v != "" {
					doc.Categories = append(doc.Categories, v)
				}
			}
		default:
			b, err = skipField(num, typ, b)
		}
		if err != nil {
			return doc, err
		}
	}
	return doc, nil
}

func decodeContractAmendment(b []byte) (*healthplan.ContractAmendmentInfo, error) {
	info := &healthplan.ContractAmendmentInfo{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, malformed("contract amendment: invalid tag: %v", protowire.ParseError(n))
		}
		b = b[n:]
		var err error
		switch {
		case num == amendFieldModifiedBenefits && typ == protowire.VarintType:
			info.ModifiedBenefitsProvided, b, err = consumeBool(b)
		case num == amendFieldModifiedGeoArea && typ == protowire.VarintType:
			info.ModifiedGeoAreaServed, b, err = consumeBool(b)
		case num == amendFieldModifiedRiskShare && typ == protowire.VarintType:
			info.ModifiedRiskSharingStrategy, b, err = consumeBool(b)
		case num == amendFieldModifiedIncentives && typ == protowire.VarintType:
			info.ModifiedIncentiveArrangements, b, err = consumeBool(b)
		case num == amendFieldRelatedToCovid && typ == protowire.VarintType:
			info.RelatedToCovid19, b, err = consumeBool(b)
		default:
			b, err = skipField(num, typ, b)
		}
		if err != nil {
			return nil, err
		}
	}
	return info, nil
}

func decodeRateAmendment(b []byte) (*healthplan.RateAmendmentInfo, error) {
	info := &healthplan.RateAmendmentInfo{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, malformed("rate amendment: invalid tag: %v", protowire.ParseError(n))
		}
		b = b[n:]
		var err error
		switch {
		case num == rateAmendFieldStart && typ == protowire.BytesType:
			info.EffectiveDateStart, b, err = consumeDate(b)
		case num == rateAmendFieldEnd && typ == protowire.BytesType:
			info.EffectiveDateEnd, b, err = consumeDate(b)
		default:
			b, err = skipField(num, typ, b)
		}
		if err != nil {
			return nil, err
		}
	}
	return info, nil
}

// consumeDate reads a calendar-date sub-message. If any of the three
// components is missing the whole date is absent; a partial date is never
// synthesized into a zero-filled one.
func consumeDate(b []byte) (*healthplan.CalendarDate, []byte, error) {
	msg, rest, err := consumeBytes(b)
	if err != nil {
		return nil, nil, err
	}
	var date healthplan.CalendarDate
	var haveYear, haveMonth, haveDay bool
	for len(msg) > 0 {
		num, typ, n := protowire.ConsumeTag(msg)
		if n < 0 {
			return nil, nil, malformed("calendar date: invalid tag: %v", protowire.ParseError(n))
		}
		msg = msg[n:]
		var v uint64
		switch {
		case num == dateFieldYear && typ == protowire.VarintType:
			v, msg, err = consumeVarint(msg)
			date.Year, haveYear = int(v), true
		case num == dateFieldMonth && typ == protowire.VarintType:
			v, msg, err = consumeVarint(msg)
			date.Month, haveMonth = time.Month(v), true
		case num == dateFieldDay && typ == protowire.VarintType:
			v, msg, err = consumeVarint(msg)
			date.Day, haveDay = int(v), true
		default:
			msg, err = skipField(num, typ, msg)
		}
		if err != nil {
			return nil, nil, err
		}
	}
	if !haveYear || !haveMonth || !haveDay {
		return nil, rest, nil
	}
	return &date, rest, nil
}

// consumeTimestamp reads a timestamp sub-message back into a UTC time with
// millisecond precision.
func consumeTimestamp(b []byte) (time.Time, []byte, error) {
	msg, rest, err := consumeBytes(b)
	if err != nil {
		return time.Time{}, nil, err
	}
	var seconds, millis uint64
	for len(msg) > 0 {
		num, typ, n := protowire.ConsumeTag(msg)
		if n < 0 {
			return time.Time{}, nil, malformed("timestamp: invalid tag: %v", protowire.ParseError(n))
		}
		msg = msg[n:]
		switch {
		case num == tsFieldSeconds && typ == protowire.VarintType:
			seconds, msg, err = consumeVarint(msg)
		case num == tsFieldMillis && typ == protowire.VarintType:
			millis, msg, err = consumeVarint(msg)
		default:
			msg, err = skipField(num, typ, msg)
		}
		if err != nil {
			return time.Time{}, nil, err
		}
	}
	return time.UnixMilli(int64(seconds)*1000 + int64(millis)).UTC(), rest, nil
}

func consumeString(b []byte) (string, []byte, error) {
	s, n := protowire.ConsumeString(b)
	if n < 0 {
		return "", nil, malformed("invalid string field: %v", protowire.ParseError(n))
	}
	return s, b[n:], nil
}

func consumeBytes(b []byte) ([]byte, []byte, error) {
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, nil, malformed("invalid length-delimited field: %v", protowire.ParseError(n))
	}
	return v, b[n:], nil
}

func consumeVarint(b []byte) (uint64, []byte, error) {
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, nil, malformed("invalid varint field: %v", protowire.ParseError(n))
	}
	return v, b[n:], nil
}

func consumeBool(b []byte) (*bool, []byte, error) {
	v, rest, err := consumeVarint(b)
	if err != nil {
		return nil, nil, err
	}
	val := v != 0
	return &val, rest, nil
}

func skipField(num protowire.Number, typ protowire.Type, b []byte) ([]byte, error) {
	n := protowire.ConsumeFieldValue(num, typ, b)
	if n < 0 {
		return nil, malformed("invalid value for field %d: %v", num, protowire.ParseError(n))
	}
	return b[n:], nil
}
