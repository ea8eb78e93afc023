// internal/domain/models/inquiry.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Inquiry is a message submitted through the contact form.
//
// Message is stored as plain text; any markup the visitor typed has already
// been stripped. ClientHash is a keyed hash of the client address so repeat
// senders can be recognised without keeping the address itself.
type Inquiry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Reference string             `bson:"reference" json:"reference"` // UUID shown to the visitor

	Name    string `bson:"name" json:"name"`
	Email   string `bson:"email" json:"email"`
	Subject string `bson:"subject" json:"subject"` // one of InquirySubjects
	Message string `bson:"message" json:"message"`

	ClientHash string `bson:"client_hash,omitempty" json:"-"`
	UserAgent  string `bson:"user_agent,omitempty" json:"-"`

	Notified   bool       `bson:"notified" json:"notified"`
	NotifiedAt *time.Time `bson:"notified_at,omitempty" json:"notified_at,omitempty"`
	CreatedAt  time.Time  `bson:"created_at" json:"created_at"`
}

// ShortReference returns the first eight characters of the reference, the
// form quoted back to visitors.
func (i Inquiry) ShortReference() string {
	if len(i.Reference) <= 8 {
		return i.Reference
	}
	return i.Reference[:8]
}
