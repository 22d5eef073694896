/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of the DocumentStore interface for testing
package mock

import (
	"bytes"
	"context"
	"io"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/datastore"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/errors"
	"github.com/Objective-Corporation/3sixty-mongo-remoteagent/storagemodels"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Inserted is a document persisted through Insert.
type Inserted struct {
	Name    string
	Fields  bson.D
	Payload []byte
}

type entry struct {
	rec     storagemodels.Record
	payload []byte
}

// DocumentStore is an in-memory datastore.DocumentStore. Records are kept in
// insertion order, which is also the order Find returns them in. Filters are
// not evaluated; the last-modified time range is, in bucket mode.
type DocumentStore struct {
	mu          sync.RWMutex
	mode        storagemodels.Mode
	idField     string
	entries     []*entry
	inserted    []Inserted
	deleted     []any
	findFunc    func(ctx context.Context, params *storagemodels.QueryParams) (datastore.Cursor, error)
	locateErrs  map[string]error
	recordErrs  map[int]error
	findError   error
	deleteError error
	insertError error
	closeError  error
	closeCount  int
	lastParams  *storagemodels.QueryParams
}

var _ datastore.DocumentStore = (*DocumentStore)(nil)

// New creates a new mock DocumentStore
func New(mode storagemodels.Mode, idField string) *DocumentStore {
	if idField == "" {
		idField = storagemodels.NativeIDField
	}
	return &DocumentStore{
		mode:       mode,
		idField:    idField,
		locateErrs: make(map[string]error),
		recordErrs: make(map[int]error),
	}
}

// WithFindFunc sets a custom find function for testing
func (m *DocumentStore) WithFindFunc(f func(ctx context.Context, params *storagemodels.QueryParams) (datastore.Cursor, error)) *DocumentStore {
	m.findFunc = f
	return m
}

// WithFindError makes Find return an error
func (m *DocumentStore) WithFindError(err error) *DocumentStore {
	m.findError = err
	return m
}

// WithLocateError makes Locate, OpenBinary and Delete fail for id
func (m *DocumentStore) WithLocateError(id string, err error) *DocumentStore {
	m.locateErrs[id] = err
	return m
}

// WithRecordError makes the cursor fail to decode the result at index
func (m *DocumentStore) WithRecordError(index int, err error) *DocumentStore {
	m.recordErrs[index] = err
	return m
}

// WithDeleteError makes Delete operations return an error
func (m *DocumentStore) WithDeleteError(err error) *DocumentStore {
	m.deleteError = err
	return m
}

// WithInsertError makes Insert operations return an error
func (m *DocumentStore) WithInsertError(err error) *DocumentStore {
	m.insertError = err
	return m
}

// WithCloseError makes Close return an error
func (m *DocumentStore) WithCloseError(err error) *DocumentStore {
	m.closeError = err
	return m
}

// Mode implements datastore.DocumentStore
func (m *DocumentStore) Mode() storagemodels.Mode { return m.mode }

// IDField implements datastore.DocumentStore
func (m *DocumentStore) IDField() string { return m.idField }

// Find returns every record in insertion order
func (m *DocumentStore) Find(ctx context.Context, params *storagemodels.QueryParams) (datastore.Cursor, error) {
	m.mu.Lock()
	m.lastParams = params
	m.mu.Unlock()

	if m.findFunc != nil {
		return m.findFunc(ctx, params)
	}
	if m.findError != nil {
		return nil, m.findError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	recs := make([]*storagemodels.Record, 0, len(m.entries))
	for _, e := range m.entries {
		if m.mode == storagemodels.ModeBucket && !inTimeRange(e.rec, params) {
			continue
		}
		rec := e.rec
		recs = append(recs, &rec)
	}
	errs := make(map[int]error, len(m.recordErrs))
	for k, v := range m.recordErrs {
		errs[k] = v
	}
	return NewCursor(recs, errs), nil
}

// Identity implements datastore.DocumentStore
func (m *DocumentStore) Identity(rec *storagemodels.Record) (string, bool) {
	return datastore.ResolveIdentity(m.idField, m.mode, rec)
}

// Locate returns a copy of the record matching the identity predicate of id
func (m *DocumentStore) Locate(ctx context.Context, id string) (*storagemodels.Record, error) {
	e, err := m.find(id)
	if err != nil || e == nil {
		return nil, err
	}
	rec := e.rec
	return &rec, nil
}

// OpenBinary returns the stored payload in bucket mode and an empty payload
// in collection mode
func (m *DocumentStore) OpenBinary(ctx context.Context, id string) (*storagemodels.Binary, error) {
	if m.mode == storagemodels.ModeCollection {
		return &storagemodels.Binary{
			ID:       id,
			Reader:   io.NopCloser(strings.NewReader("")),
			MimeType: storagemodels.DefaultMimeType,
		}, nil
	}
	e, err := m.find(id)
	if err != nil || e == nil {
		return nil, err
	}
	mimeType := storagemodels.DefaultMimeType
	if e.rec.HasContentType {
		mimeType = e.rec.ContentType
	}
	return &storagemodels.Binary{
		ID:       id,
		Reader:   io.NopCloser(bytes.NewReader(e.payload)),
		MimeType: mimeType,
	}, nil
}

// Delete removes the matching record. In bucket mode with a secondary
// identity field, files without metadata are not deleted.
func (m *DocumentStore) Delete(ctx context.Context, id string) (bool, error) {
	if m.deleteError != nil {
		return false, m.deleteError
	}
	e, err := m.find(id)
	if err != nil || e == nil {
		return false, err
	}
	native := m.idField == storagemodels.NativeIDField
	if m.mode == storagemodels.ModeBucket && !native && !e.rec.Attributed {
		return false, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i, cur := range m.entries {
		if cur == e {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			m.deleted = append(m.deleted, e.rec.NativeID)
			return true, nil
		}
	}
	return false, nil
}

// Insert stores a new record built from fields
func (m *DocumentStore) Insert(ctx context.Context, name string, fields bson.D, payload io.Reader) error {
	if m.insertError != nil {
		return m.insertError
	}
	var data []byte
	if payload != nil && m.mode == storagemodels.ModeBucket {
		var err error
		if data, err = io.ReadAll(payload); err != nil {
			return err
		}
	}

	values := make(map[string]any, len(fields))
	for _, f := range fields {
		values[f.Key] = f.Value
	}
	rec := storagemodels.Record{
		NativeID:   primitive.NewObjectID(),
		Fields:     values,
		Attributed: true,
	}
	if m.mode == storagemodels.ModeBucket {
		rec.Name = name
		rec.Size = int64(len(data))
	} else {
		rec.Fields[storagemodels.NativeIDField] = rec.NativeID
		if v, ok := values[storagemodels.FieldFilename].(string); ok {
			rec.Name = v
		}
		if v, ok := values[storagemodels.FieldLength].(int64); ok {
			rec.Size = v
		}
	}
	if v, ok := values[storagemodels.FieldContentType].(string); ok {
		rec.ContentType = v
		rec.HasContentType = true
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, &entry{rec: rec, payload: data})
	m.inserted = append(m.inserted, Inserted{Name: name, Fields: fields, Payload: data})
	return nil
}

// Close records the call
func (m *DocumentStore) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeCount++
	return m.closeError
}

// Helper methods for testing

// Add stores rec with payload and returns its native id. A nil NativeID is
// replaced with a new ObjectID.
func (m *DocumentStore) Add(rec storagemodels.Record, payload []byte) primitive.ObjectID {
	oid, ok := rec.NativeID.(primitive.ObjectID)
	if rec.NativeID == nil {
		oid, ok = primitive.NewObjectID(), true
		rec.NativeID = oid
	}
	if !ok {
		oid = primitive.NilObjectID
	}
	if m.mode == storagemodels.ModeBucket && rec.Size == 0 {
		rec.Size = int64(len(payload))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, &entry{rec: rec, payload: payload})
	return oid
}

// Inserted returns the documents persisted through Insert
func (m *DocumentStore) Inserted() []Inserted {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Inserted(nil), m.inserted...)
}

// Deleted returns the native ids removed by Delete, in order
func (m *DocumentStore) Deleted() []any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]any(nil), m.deleted...)
}

// Count returns the number of stored records
func (m *DocumentStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// CloseCount returns how many times Close was called
func (m *DocumentStore) CloseCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closeCount
}

// LastQuery returns the parameters of the last Find call
func (m *DocumentStore) LastQuery() *storagemodels.QueryParams {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastParams
}

// find returns the first entry matching the identity predicate of id
func (m *DocumentStore) find(id string) (*entry, error) {
	if err, ok := m.locateErrs[id]; ok {
		return nil, err
	}
	pred, err := datastore.IdentityPredicate(m.idField, m.mode, id)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.entries {
		if matches(pred, e.rec) {
			return e, nil
		}
	}
	return nil, nil
}

func matches(pred datastore.Predicate, rec storagemodels.Record) bool {
	if pred.Field == storagemodels.NativeIDField {
		return reflect.DeepEqual(rec.NativeID, pred.Value)
	}
	field := pred.Field
	if strings.HasPrefix(field, storagemodels.MetadataPrefix) {
		if !rec.Attributed {
			return false
		}
		field = strings.TrimPrefix(field, storagemodels.MetadataPrefix)
	}
	v, ok := rec.Fields[field]
	return ok && reflect.DeepEqual(v, pred.Value)
}

func inTimeRange(rec storagemodels.Record, params *storagemodels.QueryParams) bool {
	if !params.HasTimeRange() {
		return true
	}
	var modified time.Time
	switch v := rec.Fields[storagemodels.FieldLastModified].(type) {
	case primitive.DateTime:
		modified = v.Time()
	case time.Time:
		modified = v
	default:
		return false
	}
	if !params.Start.IsZero() && modified.Before(params.Start) {
		return false
	}
	if !params.End.IsZero() && modified.After(params.End) {
		return false
	}
	return true
}

// Cursor iterates over a fixed slice of records
type Cursor struct {
	recs   []*storagemodels.Record
	errs   map[int]error
	pos    int
	err    error
	closed bool
}

// NewCursor returns a cursor over recs. errs maps result indexes to decode errors.
func NewCursor(recs []*storagemodels.Record, errs map[int]error) *Cursor {
	return &Cursor{recs: recs, errs: errs, pos: -1}
}

// WithError makes the cursor fail once recs are exhausted
func (c *Cursor) WithError(err error) *Cursor {
	c.err = err
	return c
}

// Next advances the cursor
func (c *Cursor) Next(ctx context.Context) bool {
	if c.closed || ctx.Err() != nil {
		return false
	}
	if c.pos+1 >= len(c.recs) {
		c.pos = len(c.recs)
		return false
	}
	c.pos++
	return true
}

// Record returns the current record
func (c *Cursor) Record() (*storagemodels.Record, error) {
	if c.pos < 0 || c.pos >= len(c.recs) {
		return nil, errors.NewValidationError("cursor", "no current record")
	}
	if err, ok := c.errs[c.pos]; ok {
		return nil, err
	}
	return c.recs[c.pos], nil
}

// Err returns the error set with WithError once the cursor is exhausted
func (c *Cursor) Err() error {
	if c.pos >= len(c.recs) {
		return c.err
	}
	return nil
}

// Close closes the cursor
func (c *Cursor) Close(ctx context.Context) error {
	c.closed = true
	return nil
}

// Closed reports whether Close was called
func (c *Cursor) Closed() bool { return c.closed }
