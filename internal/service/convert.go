package service

import (
	"tscat/internal/model"
	"tscat/internal/ts"
)

// flatten turns a document into the rows stored for a catalog.
func flatten(doc *ts.Document) ([]model.Context, []model.Message) {
	contexts := make([]model.Context, 0, len(doc.Contexts))
	messages := make([]model.Message, 0, doc.MessageCount())
	for ci, c := range doc.Contexts {
		contexts = append(contexts, model.Context{Position: ci, Name: c.Name, Comment: c.Comment})
		for _, m := range c.Messages {
			msg := model.Message{
				Position:          len(messages),
				ContextPosition:   ci,
				Context:           c.Name,
				MsgID:             m.ID,
				Numerus:           m.Numerus,
				Source:            m.Source,
				OldSource:         m.OldSource,
				Disambiguation:    m.Comment,
				OldComment:        m.OldComment,
				ExtraComment:      m.ExtraComment,
				TranslatorComment: m.TranslatorComment,
				Translation:       m.Translation.Text,
				NumerusForms:      m.Translation.Forms,
				Status:            string(m.Translation.Status()),
			}
			for _, loc := range m.Locations {
				msg.Locations = append(msg.Locations, model.Location{Filename: loc.Filename, Line: loc.Line})
			}
			messages = append(messages, msg)
		}
	}
	return contexts, messages
}

// assemble rebuilds a document from stored rows. Messages must be ordered by position.
func assemble(catalog model.Catalog, contexts []model.Context, messages []model.Message) *ts.Document {
	doc := &ts.Document{
		Version:        catalog.Version,
		Language:       catalog.Language,
		SourceLanguage: catalog.SourceLanguage,
		Doctype:        catalog.Doctype,
		Contexts:       make([]ts.Context, len(contexts)),
	}
	byPosition := make(map[int]int, len(contexts))
	for i, c := range contexts {
		doc.Contexts[i] = ts.Context{Name: c.Name, Comment: c.Comment}
		byPosition[c.Position] = i
	}
	for _, m := range messages {
		i, ok := byPosition[m.ContextPosition]
		if !ok {
			// context row missing; keep the message under its name
			doc.Contexts = append(doc.Contexts, ts.Context{Name: m.Context})
			i = len(doc.Contexts) - 1
			byPosition[m.ContextPosition] = i
		}
		doc.Contexts[i].Messages = append(doc.Contexts[i].Messages, toTS(m))
	}
	return doc
}

func toTS(m model.Message) ts.Message {
	msg := ts.Message{
		ID:                m.MsgID,
		Numerus:           m.Numerus,
		Source:            m.Source,
		OldSource:         m.OldSource,
		Comment:           m.Disambiguation,
		OldComment:        m.OldComment,
		ExtraComment:      m.ExtraComment,
		TranslatorComment: m.TranslatorComment,
		Translation: ts.Translation{
			Text:  m.Translation,
			Forms: m.NumerusForms,
		},
	}
	if status, ok := ts.ParseStatus(m.Status); ok {
		msg.Translation.Type = status.TypeAttr()
	} else {
		msg.Translation.Type = string(ts.StatusUnfinished)
	}
	for _, loc := range m.Locations {
		msg.Locations = append(msg.Locations, ts.Location{Filename: loc.Filename, Line: loc.Line})
	}
	return msg
}
