package solr

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/AlColeNS/search-expiscor-sub001/expiscor"
)

// Operation is the update-message kind and names the message root element.
type Operation string

const (
	OpAdd    Operation = "add"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// updateTimeFormat is the canonical pattern for date and time values in
// update messages.
const updateTimeFormat = "2006-01-02T15:04:05Z"

// timeLayouts are the accepted inbound layouts for date-ish field values,
// tried in order.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"15:04:05",
}

// UpdateWriter streams an update message for one operation into a sink it
// owns for its whole session. The writer moves one way: unopened, header
// written, any number of content and directive emissions, then closed.
// Content, directive, and trailer emissions write the header themselves if
// the caller has not, so the message root is always present. Closed is
// absorbing; every call on a closed writer is a guarded no-op.
//
// A writer is not safe for concurrent use.
type UpdateWriter struct {
	op              Operation
	sink            io.Writer
	w               *bufio.Writer
	includeChildren bool
	headerWritten   bool
	trailerWritten  bool
	closed          bool
}

// NewUpdateWriter creates a writer for one message. If sink also implements
// io.Closer it is released on Close.
func NewUpdateWriter(op Operation, sink io.Writer) *UpdateWriter {
	return &UpdateWriter{
		op:   op,
		sink: sink,
		w:    bufio.NewWriter(sink),
	}
}

// IncludeChildren toggles emission of document child relationships as
// nested doc elements.
func (uw *UpdateWriter) IncludeChildren(on bool) {
	uw.includeChildren = on
}

// Operation returns the writer's operation keyword.
func (uw *UpdateWriter) Operation() Operation {
	return uw.op
}

// WriteHeader emits the XML prolog and the opening operation tag.
func (uw *UpdateWriter) WriteHeader() error {
	if uw.closed || uw.headerWritten {
		return nil
	}
	uw.headerWritten = true
	_, err := fmt.Fprintf(uw.w, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<%s>\n", uw.op)
	return err
}

// WriteBag emits one doc element for the bag's assigned fields.
func (uw *UpdateWriter) WriteBag(bag *expiscor.Bag, updateMode bool, indent int) error {
	if uw.closed {
		return nil
	}
	if err := uw.WriteHeader(); err != nil {
		return err
	}
	if err := uw.openDoc(bag, indent); err != nil {
		return err
	}
	if err := uw.writeFields(bag, updateMode, indent+1); err != nil {
		return err
	}
	return uw.closeDoc(indent)
}

// WriteDocument emits the document's bag plus, when toggled on, one nested
// doc per non-empty child relationship. Children always emit in plain
// form.
func (uw *UpdateWriter) WriteDocument(doc *expiscor.Document, updateMode bool, indent int) error {
	if uw.closed {
		return nil
	}
	if err := uw.WriteHeader(); err != nil {
		return err
	}
	if err := uw.openDoc(doc.Bag, indent); err != nil {
		return err
	}
	if err := uw.writeFields(doc.Bag, updateMode, indent+1); err != nil {
		return err
	}
	if uw.includeChildren && uw.op != OpDelete {
		for _, rel := range doc.Relationships() {
			if rel.Bag == nil || rel.Bag.Len() == 0 {
				continue
			}
			if err := uw.WriteBag(rel.Bag, false, indent+1); err != nil {
				return err
			}
		}
	}
	return uw.closeDoc(indent)
}

// WriteTable emits one doc per table row, preserving row order.
func (uw *UpdateWriter) WriteTable(t *expiscor.Table, updateMode bool, indent int) error {
	if uw.closed {
		return nil
	}
	for i := 0; i < t.RowCount(); i++ {
		if err := uw.WriteBag(t.RowBag(i), updateMode, indent); err != nil {
			return err
		}
	}
	return nil
}

// WriteCommit emits an empty commit directive. The caller may issue it any
// number of times, anywhere between document emissions.
func (uw *UpdateWriter) WriteCommit() error {
	return uw.writeDirective("commit")
}

// WriteOptimize emits an empty optimize directive.
func (uw *UpdateWriter) WriteOptimize() error {
	return uw.writeDirective("optimize")
}

func (uw *UpdateWriter) writeDirective(name string) error {
	if uw.closed {
		return nil
	}
	if err := uw.WriteHeader(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(uw.w, "%s<%s/>\n", pad(1), name)
	return err
}

// WriteTrailer emits the closing operation tag and flushes the sink. It
// happens at most once per writer.
func (uw *UpdateWriter) WriteTrailer() error {
	if uw.closed || uw.trailerWritten {
		return nil
	}
	if err := uw.WriteHeader(); err != nil {
		return err
	}
	uw.trailerWritten = true
	if _, err := fmt.Fprintf(uw.w, "</%s>\n", uw.op); err != nil {
		return err
	}
	return uw.w.Flush()
}

// Close writes the trailer and releases the sink. Closing twice is a no-op:
// no error, no duplicate trailer.
func (uw *UpdateWriter) Close() error {
	if uw.closed {
		return nil
	}
	err := uw.WriteTrailer()
	uw.closed = true
	if c, ok := uw.sink.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (uw *UpdateWriter) openDoc(bag *expiscor.Bag, indent int) error {
	if _, err := fmt.Fprintf(uw.w, "%s<doc>\n", pad(indent)); err != nil {
		return err
	}
	// Advisory only: the doc is emitted either way.
	if err := bag.Validate(); err != nil {
		if _, werr := fmt.Fprintf(uw.w, "%s<!-- field set invalid: %s -->\n",
			pad(indent+1), escapeComment(err.Error())); werr != nil {
			return werr
		}
	}
	return nil
}

func (uw *UpdateWriter) closeDoc(indent int) error {
	_, err := fmt.Fprintf(uw.w, "%s</doc>\n", pad(indent))
	return err
}

// writeFields emits the bag's fields in insertion order. Delete messages
// carry only the primary key; everything else follows the skip and
// update-flag rules.
func (uw *UpdateWriter) writeFields(bag *expiscor.Bag, updateMode bool, indent int) error {
	if uw.op == OpDelete {
		pk := bag.PrimaryKeyField()
		if pk == nil || !pk.IsAssigned() {
			return nil
		}
		value := formatValue(pk, pk.Value())
		if value == "" {
			return nil
		}
		return uw.writeFieldValue(pk, value, false, indent)
	}

	for _, f := range bag.Fields() {
		if !f.IsAssigned() || f.IsHidden() {
			continue
		}
		// The primary key never carries the update directive.
		withUpdate := updateMode && !f.IsPrimaryKey()
		for _, raw := range f.Values() {
			value := formatValue(f, raw)
			if value == "" {
				continue
			}
			if err := uw.writeFieldValue(f, value, withUpdate, indent); err != nil {
				return err
			}
		}
	}
	return nil
}

func (uw *UpdateWriter) writeFieldValue(f *expiscor.Field, value string, withUpdate bool, indent int) error {
	escaped := escapeText(value)
	if f.IsContent() {
		escaped = escapeContent(value)
	}
	if withUpdate {
		_, err := fmt.Fprintf(uw.w, "%s<field name=\"%s\" update=\"set\">%s</field>\n",
			pad(indent), escapeAttr(f.Name), escaped)
		return err
	}
	_, err := fmt.Fprintf(uw.w, "%s<field name=\"%s\">%s</field>\n", pad(indent), escapeAttr(f.Name), escaped)
	return err
}

// formatValue renders one raw value for emission. Date-ish fields reformat
// to the canonical pattern when the raw value parses; an unparseable value
// passes through untouched rather than vanishing.
func formatValue(f *expiscor.Field, raw string) string {
	if !f.Type.IsDateOrTime() || raw == "" {
		return raw
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Format(updateTimeFormat)
		}
	}
	return raw
}

func pad(indent int) string {
	return strings.Repeat(" ", indent*2)
}

// escapeComment keeps the validity marker from breaking out of its comment.
func escapeComment(s string) string {
	return strings.ReplaceAll(s, "--", "- -")
}
