// internal/domain/models/inquirysubjects.go
package models

import "strings"

// Contact form subjects. The form offers exactly these options; anything
// else submitted is filed under InquirySubjectOther.
const (
	InquirySubjectProduct       = "Product Inquiry"
	InquirySubjectCollaboration = "Project Collaboration"
	InquirySubjectSupport       = "Technical Support"
	InquirySubjectOther         = "Other"
)

// InquirySubjects lists the subjects in form order.
var InquirySubjects = []string{
	InquirySubjectProduct,
	InquirySubjectCollaboration,
	InquirySubjectSupport,
	InquirySubjectOther,
}

// NormalizeInquirySubject maps s onto InquirySubjects, ignoring case and
// surrounding whitespace. Unknown values become InquirySubjectOther.
func NormalizeInquirySubject(s string) string {
	s = strings.TrimSpace(s)
	for _, known := range InquirySubjects {
		if strings.EqualFold(s, known) {
			return known
		}
	}
	return InquirySubjectOther
}
