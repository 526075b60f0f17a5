package rpcapi

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/types/known/structpb"
)

// ErrBadMessage marks a request or response whose fields have the wrong type.
var ErrBadMessage = errors.New("malformed message")

// maxSafeInt is the largest integer a Struct number carries exactly.
const maxSafeInt = 1 << 53

type RegisterRequest struct {
	UserName    string
	Password    string
	DisplayName string
}

func (m RegisterRequest) ToStruct() *structpb.Struct {
	return fields(map[string]*structpb.Value{
		"username":     structpb.NewStringValue(m.UserName),
		"password":     structpb.NewStringValue(m.Password),
		"display_name": structpb.NewStringValue(m.DisplayName),
	})
}

func (m *RegisterRequest) FromStruct(s *structpb.Struct) error {
	r := reader{s: s}
	m.UserName = r.str("username")
	m.Password = r.str("password")
	m.DisplayName = r.str("display_name")
	return r.err
}

type LoginRequest struct {
	UserName string
	Password string
}

func (m LoginRequest) ToStruct() *structpb.Struct {
	return fields(map[string]*structpb.Value{
		"username": structpb.NewStringValue(m.UserName),
		"password": structpb.NewStringValue(m.Password),
	})
}

func (m *LoginRequest) FromStruct(s *structpb.Struct) error {
	r := reader{s: s}
	m.UserName = r.str("username")
	m.Password = r.str("password")
	return r.err
}

// AuthResponse answers Register and Login.
type AuthResponse struct {
	Message  string
	UserName string
	Token    string
}

func (m AuthResponse) ToStruct() *structpb.Struct {
	return fields(map[string]*structpb.Value{
		"message":  structpb.NewStringValue(m.Message),
		"username": structpb.NewStringValue(m.UserName),
		"token":    structpb.NewStringValue(m.Token),
	})
}

func (m *AuthResponse) FromStruct(s *structpb.Struct) error {
	r := reader{s: s}
	m.Message = r.str("message")
	m.UserName = r.str("username")
	m.Token = r.str("token")
	return r.err
}

// NoteRequest is the body of CreateNote (ID ignored) and UpdateNote.
type NoteRequest struct {
	ID      int64
	Title   string
	Content string
	Tags    []string
}

func (m NoteRequest) ToStruct() *structpb.Struct {
	return fields(map[string]*structpb.Value{
		"id":      structpb.NewNumberValue(float64(m.ID)),
		"title":   structpb.NewStringValue(m.Title),
		"content": structpb.NewStringValue(m.Content),
		"tags":    stringList(m.Tags),
	})
}

func (m *NoteRequest) FromStruct(s *structpb.Struct) error {
	r := reader{s: s}
	m.ID = r.integer("id")
	m.Title = r.str("title")
	m.Content = r.str("content")
	m.Tags = r.strs("tags")
	return r.err
}

// NoteID addresses one note in GetNote and DeleteNote.
type NoteID struct {
	ID int64
}

func (m NoteID) ToStruct() *structpb.Struct {
	return fields(map[string]*structpb.Value{"id": structpb.NewNumberValue(float64(m.ID))})
}

func (m *NoteID) FromStruct(s *structpb.Struct) error {
	r := reader{s: s}
	m.ID = r.integer("id")
	return r.err
}

// Note is a stored note as returned to its owner. Timestamps are RFC 3339.
type Note struct {
	ID        int64
	Title     string
	Content   string
	Tags      []string
	CreatedAt string
	UpdatedAt string
}

func (m Note) ToStruct() *structpb.Struct {
	return fields(m.values())
}

func (m Note) values() map[string]*structpb.Value {
	return map[string]*structpb.Value{
		"id":         structpb.NewNumberValue(float64(m.ID)),
		"title":      structpb.NewStringValue(m.Title),
		"content":    structpb.NewStringValue(m.Content),
		"tags":       stringList(m.Tags),
		"created_at": structpb.NewStringValue(m.CreatedAt),
		"updated_at": structpb.NewStringValue(m.UpdatedAt),
	}
}

func (m *Note) FromStruct(s *structpb.Struct) error {
	r := reader{s: s}
	m.ID = r.integer("id")
	m.Title = r.str("title")
	m.Content = r.str("content")
	m.Tags = r.strs("tags")
	m.CreatedAt = r.str("created_at")
	m.UpdatedAt = r.str("updated_at")
	return r.err
}

type ListNotesRequest struct {
	Page  int
	Size  int
	Query string
}

func (m ListNotesRequest) ToStruct() *structpb.Struct {
	return fields(map[string]*structpb.Value{
		"page":  structpb.NewNumberValue(float64(m.Page)),
		"size":  structpb.NewNumberValue(float64(m.Size)),
		"query": structpb.NewStringValue(m.Query),
	})
}

func (m *ListNotesRequest) FromStruct(s *structpb.Struct) error {
	r := reader{s: s}
	m.Page = int(r.integer("page"))
	m.Size = int(r.integer("size"))
	m.Query = r.str("query")
	return r.err
}

// NotePage is one page of ListNotes results.
type NotePage struct {
	Items      []Note
	Page       int
	Size       int
	TotalItems int64
	TotalPages int
}

func (m NotePage) ToStruct() *structpb.Struct {
	items := make([]*structpb.Value, 0, len(m.Items))
	for _, n := range m.Items {
		items = append(items, structpb.NewStructValue(fields(n.values())))
	}
	return fields(map[string]*structpb.Value{
		"items":       structpb.NewListValue(&structpb.ListValue{Values: items}),
		"page":        structpb.NewNumberValue(float64(m.Page)),
		"size":        structpb.NewNumberValue(float64(m.Size)),
		"total_items": structpb.NewNumberValue(float64(m.TotalItems)),
		"total_pages": structpb.NewNumberValue(float64(m.TotalPages)),
	})
}

func (m *NotePage) FromStruct(s *structpb.Struct) error {
	r := reader{s: s}
	m.Page = int(r.integer("page"))
	m.Size = int(r.integer("size"))
	m.TotalItems = r.integer("total_items")
	m.TotalPages = int(r.integer("total_pages"))

	m.Items = []Note{}
	for i, v := range r.list("items") {
		sv, ok := v.GetKind().(*structpb.Value_StructValue)
		if !ok {
			return fmt.Errorf("%w: items[%d] is not an object", ErrBadMessage, i)
		}
		var n Note
		if err := n.FromStruct(sv.StructValue); err != nil {
			return fmt.Errorf("items[%d]: %w", i, err)
		}
		m.Items = append(m.Items, n)
	}
	return r.err
}

type PingResponse struct {
	Status string
}

func (m PingResponse) ToStruct() *structpb.Struct {
	return fields(map[string]*structpb.Value{"status": structpb.NewStringValue(m.Status)})
}

func (m *PingResponse) FromStruct(s *structpb.Struct) error {
	r := reader{s: s}
	m.Status = r.str("status")
	return r.err
}

func fields(f map[string]*structpb.Value) *structpb.Struct {
	return &structpb.Struct{Fields: f}
}

func stringList(items []string) *structpb.Value {
	values := make([]*structpb.Value, 0, len(items))
	for _, s := range items {
		values = append(values, structpb.NewStringValue(s))
	}
	return structpb.NewListValue(&structpb.ListValue{Values: values})
}

// reader pulls typed fields out of a Struct and remembers the first type
// error. Missing fields read as zero values.
type reader struct {
	s   *structpb.Struct
	err error
}

func (r *reader) get(key string) *structpb.Value {
	if r.err != nil || r.s == nil {
		return nil
	}
	v, ok := r.s.GetFields()[key]
	if !ok {
		return nil
	}
	if _, null := v.GetKind().(*structpb.Value_NullValue); null {
		return nil
	}
	return v
}

func (r *reader) fail(key, want string) {
	r.err = fmt.Errorf("%w: field %q must be %s", ErrBadMessage, key, want)
}

func (r *reader) str(key string) string {
	v := r.get(key)
	if v == nil {
		return ""
	}
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		r.fail(key, "a string")
		return ""
	}
	return s.StringValue
}

func (r *reader) integer(key string) int64 {
	v := r.get(key)
	if v == nil {
		return 0
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || n.NumberValue != math.Trunc(n.NumberValue) || math.Abs(n.NumberValue) > maxSafeInt {
		r.fail(key, "an integer")
		return 0
	}
	return int64(n.NumberValue)
}

func (r *reader) list(key string) []*structpb.Value {
	v := r.get(key)
	if v == nil {
		return nil
	}
	l, ok := v.GetKind().(*structpb.Value_ListValue)
	if !ok {
		r.fail(key, "a list")
		return nil
	}
	return l.ListValue.GetValues()
}

// strs reads a list of strings; a missing list reads as empty, never nil.
func (r *reader) strs(key string) []string {
	out := []string{}
	for i, v := range r.list(key) {
		s, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			r.fail(fmt.Sprintf("%s[%d]", key, i), "a string")
			return []string{}
		}
		out = append(out, s.StringValue)
	}
	return out
}
