package table

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
)

// EventKind is the type of a tokenizer event.
type EventKind int

const (
	StartTag EventKind = iota
	EndTag
	Text
)

// Event is one item of the tag stream the parser consumes.
type Event struct {
	Kind  EventKind
	Name  string            // tag name for StartTag and EndTag
	Attrs map[string]string // StartTag only
	Text  string            // Text only
	Atom  atom.Atom         // zero when unknown
}

// Start builds a start tag event. Attributes are given as key, value pairs.
func Start(name string, kv ...string) Event {
	ev := Event{Kind: StartTag, Name: strings.ToLower(name)}
	if len(kv) > 0 {
		ev.Attrs = make(map[string]string, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			ev.Attrs[strings.ToLower(kv[i])] = kv[i+1]
		}
	}
	return ev
}

// End builds an end tag event.
func End(name string) Event {
	return Event{Kind: EndTag, Name: strings.ToLower(name)}
}

// Data builds a text event.
func Data(text string) Event {
	return Event{Kind: Text, Text: text}
}

// Attr returns an attribute value.
func (e Event) Attr(key string) (string, bool) {
	v, ok := e.Attrs[key]
	return v, ok
}

func (e Event) tag() atom.Atom {
	if e.Atom != 0 {
		return e.Atom
	}
	return atom.Lookup([]byte(strings.ToLower(e.Name)))
}

// Tokenize reads HTML and returns its tag stream. Comments and doctypes are
// dropped, self-closing tags produce a start and an end event.
func Tokenize(r io.Reader) ([]Event, error) {
	z := html.NewTokenizer(r)

	var events []Event
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return events, fmt.Errorf("tokenizing html: %w", err)
			}
			return events, nil
		case html.TextToken:
			events = append(events, Data(string(z.Text())))
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			ev := Event{Kind: StartTag, Name: tok.Data, Atom: tok.DataAtom}
			if len(tok.Attr) > 0 {
				ev.Attrs = make(map[string]string, len(tok.Attr))
				for _, a := range tok.Attr {
					if _, dup := ev.Attrs[a.Key]; !dup {
						ev.Attrs[a.Key] = a.Val
					}
				}
			}
			events = append(events, ev)
			if tt == html.SelfClosingTagToken {
				events = append(events, Event{Kind: EndTag, Name: tok.Data, Atom: tok.DataAtom})
			}
		case html.EndTagToken:
			tok := z.Token()
			events = append(events, Event{Kind: EndTag, Name: tok.Data, Atom: tok.DataAtom})
		}
	}
}

// TokenizeDocument decodes the input and tokenizes the decoded text. A BOM
// or a charset in contentType decides the encoding. Otherwise input that is
// valid UTF-8 is read as UTF-8, and anything else is decoded with the
// encoding named by a meta tag, or windows-1252 when there is none.
func TokenizeDocument(r io.Reader, contentType string) ([]Event, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading html: %w", err)
	}
	enc, _, certain := charset.DetermineEncoding(data, contentType)
	if !certain && utf8.Valid(data) {
		return Tokenize(bytes.NewReader(data))
	}
	return Tokenize(enc.NewDecoder().Reader(bytes.NewReader(data)))
}
