// Package wire implements the versioned binary encoding of
// healthplan.FormData. The encoding follows protobuf wire rules built
// directly on protowire: every field is optional on the wire, enum variants
// travel as small integers with 0 reserved for "absent", and unknown field
// numbers are skipped so newer writers never break older readers.
package wire

import (
	"log/slog"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/Enterprise-CMCS/managed-care-review-sub003/healthplan"
)

const (
	// FormatName identifies the message family carried by every encoded blob.
	FormatName = "healthplan-form-data"
	// FormatVersion is the schema revision this package writes. Decoders
	// accept newer versions of the same format name and log the skew.
	FormatVersion = 3
)

// Top-level FormData field numbers. Numbers are never reused or renumbered;
// retired fields keep their slot reserved.
const (
	fieldFormatName              protowire.Number = 1
	fieldFormatVersion           protowire.Number = 2
	fieldID                      protowire.Number = 3
	fieldStatus                  protowire.Number = 4
	fieldCreatedAt               protowire.Number = 5
	fieldUpdatedAt               protowire.Number = 6
	fieldStateCode               protowire.Number = 7
	fieldStateNumber             protowire.Number = 8
	fieldProgramID               protowire.Number = 9
	fieldSubmissionType          protowire.Number = 10
	fieldSubmissionDescription   protowire.Number = 11
	fieldStateContact            protowire.Number = 12
	fieldContractType            protowire.Number = 13
	fieldContractExecutionStatus protowire.Number = 14
	fieldContractDateStart       protowire.Number = 15
	fieldContractDateEnd         protowire.Number = 16
	fieldManagedCareEntity       protowire.Number = 17
	fieldFederalAuthority        protowire.Number = 18
	fieldContractAmendmentInfo   protowire.Number = 19
	fieldDocument                protowire.Number = 20
	fieldRateType                protowire.Number = 21
	fieldRateDateStart           protowire.Number = 22
	fieldRateDateEnd             protowire.Number = 23
	fieldRateDateCertified       protowire.Number = 24
	fieldRateAmendmentInfo       protowire.Number = 25
	fieldActuaryContact          protowire.Number = 26
	fieldActuaryCommunication    protowire.Number = 27
)

// Timestamp sub-message: epoch milliseconds split into whole seconds and
// the millisecond remainder.
const (
	tsFieldSeconds protowire.Number = 1
	tsFieldMillis  protowire.Number = 2
)

// CalendarDate sub-message.
const (
	dateFieldYear  protowire.Number = 1
	dateFieldMonth protowire.Number = 2
	dateFieldDay   protowire.Number = 3
)

// StateContact sub-message.
const (
	contactFieldName  protowire.Number = 1
	contactFieldTitle protowire.Number = 2
	contactFieldEmail protowire.Number = 3
)

// ActuaryContact sub-message (extends the contact triple).
const (
	actuaryFieldName      protowire.Number = 1
	actuaryFieldTitle     protowire.Number = 2
	actuaryFieldEmail     protowire.Number = 3
	actuaryFieldFirm      protowire.Number = 4
	actuaryFieldFirmOther protowire.Number = 5
)

// Document sub-message.
const (
	docFieldName     protowire.Number = 1
	docFieldS3URL    protowire.Number = 2
	docFieldSHA256   protowire.Number = 3
	docFieldCategory protowire.Number = 4
)

// ContractAmendmentInfo sub-message. Flags are tri-state: an absent tag
// means unanswered, a present tag carries true or false.
const (
	amendFieldModifiedBenefits   protowire.Number = 1
	amendFieldModifiedGeoArea    protowire.Number = 2
	amendFieldModifiedRiskShare  protowire.Number = 3
	amendFieldModifiedIncentives protowire.Number = 4
	amendFieldRelatedToCovid     protowire.Number = 5
)

// RateAmendmentInfo sub-message.
const (
	rateAmendFieldStart protowire.Number = 1
	rateAmendFieldEnd   protowire.Number = 2
)

// Codec encodes and decodes FormData blobs. The zero value is not usable;
// construct with NewCodec.
type Codec struct {
	logger *slog.Logger
}

// NewCodec returns a codec logging version skew through slog.Default.
func NewCodec() *Codec {
	return &Codec{logger: slog.Default()}
}

// WithLogger replaces the codec's logger and returns the codec for chaining.
func (c *Codec) WithLogger(logger *slog.Logger) *Codec {
	c.logger = logger
	return c
}

var defaultCodec = NewCodec()

// Encode serializes form data with the package-level codec.
func Encode(fd healthplan.FormData) []byte {
	return defaultCodec.Encode(fd)
}

// Decode parses a blob with the package-level codec.
func Decode(data []byte) (healthplan.FormData, error) {
	return defaultCodec.Decode(data)
}
