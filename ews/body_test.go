package ews

import "testing"

func TestBodyConstructors(t *testing.T) {
	text := NewTextBody("plain")
	if text.Content() != "plain" || text.Type() != BodyTypeText {
		t.Errorf("text body = (%q, %s)", text.Content(), text.Type())
	}

	html := NewHTMLBody("<b>rich</b>")
	if html.Content() != "<b>rich</b>" || html.Type() != BodyTypeHTML {
		t.Errorf("html body = (%q, %s)", html.Content(), html.Type())
	}
}

func TestBodyFromXMLDefaultsToText(t *testing.T) {
	elem := parseFragment(t, `<t:Body>no type attribute</t:Body>`)
	body := newBodyFromXML(elem)
	if body.Type() != BodyTypeText {
		t.Errorf("Type = %s, want the Text default", body.Type())
	}

	elem = parseFragment(t, `<t:Body BodyType="HTML">&lt;p&gt;hi&lt;/p&gt;</t:Body>`)
	body = newBodyFromXML(elem)
	if body.Type() != BodyTypeHTML || body.Content() != "<p>hi</p>" {
		t.Errorf("body = (%q, %s)", body.Content(), body.Type())
	}

	if newBodyFromXML(nil) != nil {
		t.Error("nil element must yield a nil body")
	}
}
