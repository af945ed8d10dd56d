package wire

import (
	"time"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/Enterprise-CMCS/managed-care-review-sub003/healthplan"
)

// Encode serializes fd into the versioned wire format. Encoding never
// fails: absent optional fields are simply omitted, which is what lets old
// readers and new writers coexist.
func (c *Codec) Encode(fd healthplan.FormData) []byte {
	b := make([]byte, 0, 256)

	b = appendStringField(b, fieldFormatName, FormatName)
	b = appendVarintField(b, fieldFormatVersion, FormatVersion)

	b = appendStringField(b, fieldID, fd.ID)
	b = appendEnumField(b, fieldStatus, statusTable.ordinal(fd.Status))
	b = appendTimestampField(b, fieldCreatedAt, fd.CreatedAt)
	b = appendTimestampField(b, fieldUpdatedAt, fd.UpdatedAt)
	b = appendStringField(b, fieldStateCode, fd.StateCode)
	b = appendVarintField(b, fieldStateNumber, uint64(fd.StateNumber))
	for _, id := range fd.ProgramIDs {
		b = appendStringField(b, fieldProgramID, id)
	}

	b = appendEnumField(b, fieldSubmissionType, submissionTypeTable.ordinal(fd.SubmissionType))
	b = appendStringField(b, fieldSubmissionDescription, fd.SubmissionDescription)

	for _, sc := range fd.StateContacts {
		b = appendMessageField(b, fieldStateContact, encodeStateContact(sc))
	}

	b = appendEnumField(b, fieldContractType, contractTypeTable.ordinal(fd.ContractType))
	b = appendEnumField(b, fieldContractExecutionStatus, executionStatusTable.ordinal(fd.ContractExecutionStatus))
	b = appendDateField(b, fieldContractDateStart, fd.ContractDateStart)
	b = appendDateField(b, fieldContractDateEnd, fd.ContractDateEnd)
	for _, e := range fd.ManagedCareEntities {
		b = appendEnumField(b, fieldManagedCareEntity, entityTable.ordinal(e))
	}
	for _, a := range fd.FederalAuthorities {
		b = appendEnumField(b, fieldFederalAuthority, authorityTable.ordinal(a))
	}
	if fd.ContractAmendmentInfo != nil {
		b = appendMessageField(b, fieldContractAmendmentInfo, encodeContractAmendment(*fd.ContractAmendmentInfo))
	}

	for _, doc := range fd.Documents {
		b = appendMessageField(b, fieldDocument, encodeDocument(doc))
	}

	b = appendEnumField(b, fieldRateType, rateTypeTable.ordinal(fd.RateType))
	b = appendDateField(b, fieldRateDateStart, fd.RateDateStart)
	b = appendDateField(b, fieldRateDateEnd, fd.RateDateEnd)
	b = appendDateField(b, fieldRateDateCertified, fd.RateDateCertified)
	if fd.RateAmendmentInfo != nil {
		b = appendMessageField(b, fieldRateAmendmentInfo, encodeRateAmendment(*fd.RateAmendmentInfo))
	}
	for _, ac := range fd.ActuaryContacts {
		b = appendMessageField(b, fieldActuaryContact, encodeActuaryContact(ac))
	}

	b = appendEnumField(b, fieldActuaryCommunication, commTable.ordinal(fd.ActuaryCommunicationPreference))

	return b
}

func encodeStateContact(sc healthplan.StateContact) []byte {
	var b []byte
	b = appendStringField(b, contactFieldName, sc.Name)
	b = appendStringField(b, contactFieldTitle, sc.Title)
	b = appendStringField(b, contactFieldEmail, sc.Email)
	return b
}

func encodeActuaryContact(ac healthplan.ActuaryContact) []byte {
	var b []byte
	b = appendStringField(b, actuaryFieldName, ac.Name)
	b = appendStringField(b, actuaryFieldTitle, ac.Title)
	b = appendStringField(b, actuaryFieldEmail, ac.Email)
	b = appendEnumField(b, actuaryFieldFirm, firmTable.ordinal(ac.ActuarialFirm))
	b = appendStringField(b, actuaryFieldFirmOther, ac.ActuarialFirmOther)
	return b
}

func encodeDocument(doc healthplan.Document) []byte {
	var b []byte
	b = appendStringField(b, docFieldName, doc.Name)
	b = appendStringField(b, docFieldS3URL, doc.S3URL)
	b = appendStringField(b, docFieldSHA256, doc.SHA256)
	for _, cat := range doc.Categories {
		b = appendEnumField(b, docFieldCategory, docCategoryTable.ordinal(cat))
	}
	return b
}

func encodeContractAmendment(info healthplan.ContractAmendmentInfo) []byte {
	var b []byte
	b = appendBoolField(b, amendFieldModifiedBenefits, info.ModifiedBenefitsProvided)
	b = appendBoolField(b, amendFieldModifiedGeoArea, info.ModifiedGeoAreaServed)
	b = appendBoolField(b, amendFieldModifiedRiskShare, info.ModifiedRiskSharingStrategy)
	b = appendBoolField(b, amendFieldModifiedIncentives, info.ModifiedIncentiveArrangements)
	b = appendBoolField(b, amendFieldRelatedToCovid, info.RelatedToCovid19)
	return b
}

func encodeRateAmendment(info healthplan.RateAmendmentInfo) []byte {
	var b []byte
	b = appendDateField(b, rateAmendFieldStart, info.EffectiveDateStart)
	b = appendDateField(b, rateAmendFieldEnd, info.EffectiveDateEnd)
	return b
}

func encodeDate(d healthplan.CalendarDate) []byte {
	var b []byte
	b = appendVarintField(b, dateFieldYear, uint64(d.Year))
	b = appendVarintField(b, dateFieldMonth, uint64(d.Month))
	b = appendVarintField(b, dateFieldDay, uint64(d.Day))
	return b
}

func encodeTimestamp(t time.Time) []byte {
	ms := t.UnixMilli()
	var b []byte
	b = appendVarintField(b, tsFieldSeconds, uint64(ms/1000))
	b = appendVarintField(b, tsFieldMillis, uint64(ms%1000))
	return b
}

// appendStringField writes a length-delimited string field, treating the
// empty string as absent.
func appendStringField(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

// appendVarintField writes a varint field, treating 0 as absent.
func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

// appendEnumField writes an enum ordinal. Ordinal 0 means absent and is
// never put on the wire.
func appendEnumField(b []byte, num protowire.Number, ord uint64) []byte {
	return appendVarintField(b, num, ord)
}

// appendBoolField writes a tri-state flag: nil is omitted entirely, false
// is an explicit varint 0 (presence comes from the tag, not the value).
func appendBoolField(b []byte, num protowire.Number, v *bool) []byte {
	if v == nil {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	if *v {
		return protowire.AppendVarint(b, 1)
	}
	return protowire.AppendVarint(b, 0)
}

func appendMessageField(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

func appendDateField(b []byte, num protowire.Number, d *healthplan.CalendarDate) []byte {
	if d == nil {
		return b
	}
	return appendMessageField(b, num, encodeDate(*d))
}

func appendTimestampField(b []byte, num protowire.Number, t time.Time) []byte {
	if t.IsZero() {
		return b
	}
	return appendMessageField(b, num, encodeTimestamp(t))
}
