package locale

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
)

// Message keys used by the digest templates.
const (
	MsgGreeting  = "Hi %s,"
	MsgCourse    = "Course: %s"
	MsgView      = "View discussion"
	MsgPosted    = "%s wrote:"
	MsgFooter    = "You are receiving this email because you subscribed to discussion digests."
	MsgNoThreads = "There is no new activity in this course."
)

// DefaultLanguages are the languages of the built-in catalog, fallback first.
var DefaultLanguages = []string{"en", "fr", "es", "de"}

var translations = map[string]map[string]string{
	"fr": {
		MsgGreeting:  "Bonjour %s,",
		MsgCourse:    "Cours : %s",
		MsgView:      "Voir la discussion",
		MsgPosted:    "%s a écrit :",
		MsgFooter:    "Vous recevez ce courriel car vous êtes abonné aux résumés des discussions.",
		MsgNoThreads: "Il n'y a pas de nouvelle activité dans ce cours.",
	},
	"es": {
		MsgGreeting:  "Hola %s,",
		MsgCourse:    "Curso: %s",
		MsgView:      "Ver la discusión",
		MsgPosted:    "%s escribió:",
		MsgFooter:    "Recibes este correo porque estás suscrito a los resúmenes de las discusiones.",
		MsgNoThreads: "No hay actividad nueva en este curso.",
	},
	"de": {
		MsgGreeting:  "Hallo %s,",
		MsgCourse:    "Kurs: %s",
		MsgView:      "Diskussion ansehen",
		MsgPosted:    "%s schrieb:",
		MsgFooter:    "Sie erhalten diese E-Mail, weil Sie Diskussionszusammenfassungen abonniert haben.",
		MsgNoThreads: "In diesem Kurs gibt es keine neuen Aktivitäten.",
	},
}

func newCatalog(fallback language.Tag) (*catalog.Builder, error) {
	b := catalog.NewBuilder(catalog.Fallback(fallback))

	for code, msgs := range translations {
		tag := language.MustParse(code)
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, err
			}
		}
	}

	return b, nil
}
