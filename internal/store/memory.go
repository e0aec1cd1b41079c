package store

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryStore is an in-process Store used by tests and local development.
// It implements the query subset the repositories rely on: equality and
// $gte/$lt/$in filters, multi-key sorts, limits, $set/$inc updates with
// upsert, unique indexes and $group/$sort/$limit aggregation.
type memoryStore struct {
	mu          sync.Mutex
	collections map[string][]bson.M
	uniqueIdx   map[string][][]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() Store {
	return &memoryStore{
		collections: make(map[string][]bson.M),
		uniqueIdx:   make(map[string][][]string),
	}
}

func (s *memoryStore) Insert(ctx context.Context, collection string, doc any) (string, error) {
	m, err := toDoc(doc)
	if err != nil {
		return "", wrapErr("insert", collection, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := ensureID(m)
	if err := s.checkUnique(collection, m, -1); err != nil {
		return "", err
	}
	s.collections[collection] = append(s.collections[collection], m)
	return id, nil
}

func (s *memoryStore) FindOne(ctx context.Context, collection string, filter bson.M, sortSpec bson.D, out any) error {
	s.mu.Lock()
	matched := s.match(collection, filter)
	sortDocs(matched, sortSpec)
	var found bson.M
	if len(matched) > 0 {
		found = matched[0]
	}
	s.mu.Unlock()

	if found == nil {
		return ErrNoDocuments
	}
	return wrapErr("findOne", collection, decodeInto(found, out))
}

func (s *memoryStore) FindMany(ctx context.Context, collection string, filter bson.M, fo FindOptions, out any) error {
	s.mu.Lock()
	matched := s.match(collection, filter)
	sortDocs(matched, fo.Sort)
	if fo.Limit > 0 && int64(len(matched)) > fo.Limit {
		matched = matched[:fo.Limit]
	}
	if len(fo.Projection) > 0 {
		projected := make([]bson.M, len(matched))
		for i, doc := range matched {
			projected[i] = project(doc, fo.Projection)
		}
		matched = projected
	}
	s.mu.Unlock()

	return wrapErr("find", collection, decodeSlice(matched, out))
}

func (s *memoryStore) UpdateOne(ctx context.Context, collection string, filter, update bson.M, upsert bool) (UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[collection]
	for i, doc := range docs {
		if matches(doc, filter) {
			updated := cloneDoc(doc)
			applyUpdate(updated, update)
			if err := s.checkUnique(collection, updated, i); err != nil {
				return UpdateResult{}, err
			}
			docs[i] = updated
			return UpdateResult{Matched: 1, Modified: 1}, nil
		}
	}

	if !upsert {
		return UpdateResult{Matched: 0, Modified: 0}, nil
	}

	// Upsert seeds the new document from the filter's equality fields,
	// mirroring mongo semantics: operator conditions are not copied.
	created := bson.M{}
	for k, v := range filter {
		if _, isOp := asOperator(v); !isOp {
			created[k] = normalizeValue(v)
		}
	}
	applyUpdate(created, update)
	id := ensureID(created)
	if err := s.checkUnique(collection, created, -1); err != nil {
		return UpdateResult{}, err
	}
	s.collections[collection] = append(s.collections[collection], created)
	return UpdateResult{Matched: 0, Modified: 0, UpsertedID: id}, nil
}

func (s *memoryStore) DeleteOne(ctx context.Context, collection string, filter bson.M) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[collection]
	for i, doc := range docs {
		if matches(doc, filter) {
			s.collections[collection] = append(docs[:i:i], docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *memoryStore) DeleteMany(ctx context.Context, collection string, filter bson.M) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs := s.collections[collection]
	kept := docs[:0:0]
	var deleted int64
	for _, doc := range docs {
		if matches(doc, filter) {
			deleted++
			continue
		}
		kept = append(kept, doc)
	}
	s.collections[collection] = kept
	return deleted, nil
}

func (s *memoryStore) Count(ctx context.Context, collection string, filter bson.M) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.match(collection, filter))), nil
}

func (s *memoryStore) Aggregate(ctx context.Context, collection string, pipeline []bson.M, out any) error {
	s.mu.Lock()
	docs := s.match(collection, bson.M{})
	s.mu.Unlock()

	for _, stage := range pipeline {
		for name, spec := range stage {
			switch name {
			case "$match":
				filter, _ := spec.(bson.M)
				kept := docs[:0:0]
				for _, doc := range docs {
					if matches(doc, filter) {
						kept = append(kept, doc)
					}
				}
				docs = kept
			case "$group":
				spec, _ := spec.(bson.M)
				docs = groupDocs(docs, spec)
			case "$sort":
				spec, _ := spec.(bson.M)
				sortSpec := bson.D{}
				for k, v := range spec {
					sortSpec = append(sortSpec, bson.E{Key: k, Value: v})
				}
				sortDocs(docs, sortSpec)
			case "$limit":
				limit := toInt64(spec)
				if limit > 0 && int64(len(docs)) > limit {
					docs = docs[:limit]
				}
			default:
				return wrapErr("aggregate", collection, fmt.Errorf("unsupported stage %q", name))
			}
		}
	}
	return wrapErr("aggregate", collection, decodeSlice(docs, out))
}

func (s *memoryStore) EnsureIndex(ctx context.Context, collection string, keys bson.D, unique bool) error {
	if !unique {
		return nil
	}
	fields := make([]string, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, k.Key)
	}
	s.mu.Lock()
	s.uniqueIdx[collection] = append(s.uniqueIdx[collection], fields)
	s.mu.Unlock()
	return nil
}

// match returns copies of documents matching filter. Callers hold the lock.
func (s *memoryStore) match(collection string, filter bson.M) []bson.M {
	var out []bson.M
	for _, doc := range s.collections[collection] {
		if matches(doc, filter) {
			out = append(out, cloneDoc(doc))
		}
	}
	return out
}

// checkUnique enforces registered unique indexes, ignoring the document at
// position skip. Callers hold the lock.
func (s *memoryStore) checkUnique(collection string, doc bson.M, skip int) error {
	for _, fields := range s.uniqueIdx[collection] {
		for i, existing := range s.collections[collection] {
			if i == skip {
				continue
			}
			same := true
			for _, f := range fields {
				if cmp, ok := compareValues(getField(existing, f), getField(doc, f)); !ok || cmp != 0 {
					same = false
					break
				}
			}
			if same {
				return ErrDuplicateKey
			}
		}
	}
	return nil
}

func matches(doc, filter bson.M) bool {
	for key, cond := range filter {
		field := getField(doc, key)
		if ops, isOp := asOperator(cond); isOp {
			for op, arg := range ops {
				if !applyOperator(field, op, arg) {
					return false
				}
			}
			continue
		}
		cmp, ok := compareValues(field, cond)
		if !ok || cmp != 0 {
			return false
		}
	}
	return true
}

func applyOperator(field any, op string, arg any) bool {
	switch op {
	case "$gte":
		cmp, ok := compareValues(field, arg)
		return ok && cmp >= 0
	case "$gt":
		cmp, ok := compareValues(field, arg)
		return ok && cmp > 0
	case "$lte":
		cmp, ok := compareValues(field, arg)
		return ok && cmp <= 0
	case "$lt":
		cmp, ok := compareValues(field, arg)
		return ok && cmp < 0
	case "$ne":
		cmp, ok := compareValues(field, arg)
		return !ok || cmp != 0
	case "$in":
		items := reflect.ValueOf(arg)
		if items.Kind() != reflect.Slice {
			return false
		}
		for i := 0; i < items.Len(); i++ {
			if cmp, ok := compareValues(field, items.Index(i).Interface()); ok && cmp == 0 {
				return true
			}
		}
		return false
	case "$exists":
		want, _ := arg.(bool)
		return (field != nil) == want
	default:
		return false
	}
}

// asOperator reports whether cond is an operator document like {$gte: x}.
func asOperator(cond any) (bson.M, bool) {
	var m bson.M
	switch v := cond.(type) {
	case bson.M:
		m = v
	case map[string]any:
		m = bson.M(v)
	default:
		return nil, false
	}
	for k := range m {
		if !strings.HasPrefix(k, "$") {
			return nil, false
		}
	}
	return m, len(m) > 0
}

func applyUpdate(doc bson.M, update bson.M) {
	for op, spec := range update {
		fields, _ := toMap(spec)
		switch op {
		case "$set":
			for k, v := range fields {
				setField(doc, k, normalizeValue(v))
			}
		case "$inc":
			for k, v := range fields {
				current, _ := toFloat(getField(doc, k))
				delta, _ := toFloat(v)
				setField(doc, k, asStoredNumber(current+delta))
			}
		case "$setOnInsert":
			for k, v := range fields {
				if getField(doc, k) == nil {
					setField(doc, k, normalizeValue(v))
				}
			}
		}
	}
}

func groupDocs(docs []bson.M, spec bson.M) []bson.M {
	keyExpr := spec["_id"]
	groups := map[string][]bson.M{}
	keys := map[string]any{}
	var order []string

	for _, doc := range docs {
		keyVal := evalExpr(doc, keyExpr)
		keyStr := fmt.Sprintf("%v", keyVal)
		if _, seen := groups[keyStr]; !seen {
			order = append(order, keyStr)
			keys[keyStr] = keyVal
		}
		groups[keyStr] = append(groups[keyStr], doc)
	}

	out := make([]bson.M, 0, len(order))
	for _, keyStr := range order {
		row := bson.M{"_id": keys[keyStr]}
		for name, accSpec := range spec {
			if name == "_id" {
				continue
			}
			acc, _ := toMap(accSpec)
			for op, arg := range acc {
				switch op {
				case "$sum":
					var total float64
					for _, doc := range groups[keyStr] {
						v, _ := toFloat(evalExpr(doc, arg))
						total += v
					}
					row[name] = asStoredNumber(total)
				case "$avg":
					var total float64
					var n int
					for _, doc := range groups[keyStr] {
						if v, ok := toFloat(evalExpr(doc, arg)); ok {
							total += v
							n++
						}
					}
					if n > 0 {
						row[name] = total / float64(n)
					} else {
						row[name] = float64(0)
					}
				}
			}
		}
		out = append(out, row)
	}
	return out
}

// evalExpr resolves "$field" references; literals evaluate to themselves.
func evalExpr(doc bson.M, expr any) any {
	if s, ok := expr.(string); ok && strings.HasPrefix(s, "$") {
		return getField(doc, strings.TrimPrefix(s, "$"))
	}
	return expr
}

func sortDocs(docs []bson.M, sortSpec bson.D) {
	if len(sortSpec) == 0 {
		return
	}
	sort.SliceStable(docs, func(i, j int) bool {
		for _, key := range sortSpec {
			cmp, ok := compareValues(getField(docs[i], key.Key), getField(docs[j], key.Key))
			if !ok || cmp == 0 {
				continue
			}
			if toInt64(key.Value) < 0 {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}

func project(doc bson.M, projection bson.M) bson.M {
	out := bson.M{}
	if id, ok := doc["_id"]; ok {
		out["_id"] = id
	}
	for key := range projection {
		if v := getField(doc, key); v != nil {
			setField(out, key, v)
		}
	}
	return out
}

func getField(doc bson.M, key string) any {
	parts := strings.Split(key, ".")
	var current any = doc
	for _, part := range parts {
		m, ok := toMap(current)
		if !ok {
			return nil
		}
		current = m[part]
	}
	return current
}

func setField(doc bson.M, key string, value any) {
	parts := strings.Split(key, ".")
	current := doc
	for _, part := range parts[:len(parts)-1] {
		next, ok := toMap(current[part])
		if !ok {
			next = bson.M{}
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

func toMap(v any) (bson.M, bool) {
	switch m := v.(type) {
	case bson.M:
		return m, true
	case map[string]any:
		return bson.M(m), true
	case bson.D:
		out := bson.M{}
		for _, e := range m {
			out[e.Key] = e.Value
		}
		return out, true
	default:
		return nil, false
	}
}

// compareValues orders two stored values; ok is false for incomparable types.
func compareValues(a, b any) (int, bool) {
	if a == nil || b == nil {
		if a == nil && b == nil {
			return 0, true
		}
		return 0, false
	}

	if at, aok := toTime(a); aok {
		bt, bok := toTime(b)
		if !bok {
			return 0, false
		}
		switch {
		case at.Before(bt):
			return -1, true
		case at.After(bt):
			return 1, true
		default:
			return 0, true
		}
	}

	if af, aok := toFloat(a); aok {
		bf, bok := toFloat(b)
		if !bok {
			return 0, false
		}
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		default:
			return 0, true
		}
	}

	as, aok := toComparableString(a)
	bs, bok := toComparableString(b)
	if !aok || !bok {
		return 0, false
	}
	return strings.Compare(as, bs), true
}

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), true
	case primitive.DateTime:
		return t.Time().UTC(), true
	default:
		return time.Time{}, false
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func toInt64(v any) int64 {
	f, _ := toFloat(v)
	return int64(f)
}

func toComparableString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case primitive.ObjectID:
		return s.Hex(), true
	case bool:
		if s {
			return "true", true
		}
		return "false", true
	default:
		return "", false
	}
}

// asStoredNumber keeps whole counters as int64, matching bson decoding.
func asStoredNumber(f float64) any {
	if f == float64(int64(f)) {
		return int64(f)
	}
	return f
}

func normalizeValue(v any) any {
	if t, ok := v.(time.Time); ok {
		return primitive.NewDateTimeFromTime(t.UTC())
	}
	return v
}

func ensureID(doc bson.M) string {
	if id, ok := doc["_id"]; ok && id != nil {
		if oid, isOID := id.(primitive.ObjectID); !isOID || !oid.IsZero() {
			return idToString(id)
		}
	}
	oid := primitive.NewObjectID()
	doc["_id"] = oid
	return oid.Hex()
}

func toDoc(doc any) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func cloneDoc(doc bson.M) bson.M {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		if nested, ok := toMap(v); ok {
			out[k] = cloneDoc(nested)
			continue
		}
		out[k] = v
	}
	return out
}

func decodeInto(doc bson.M, out any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}

// decodeSlice decodes docs into out, which must be a pointer to a slice.
func decodeSlice(docs []bson.M, out any) error {
	ptr := reflect.ValueOf(out)
	if ptr.Kind() != reflect.Ptr || ptr.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("decode target must be a pointer to slice, got %T", out)
	}
	sliceVal := reflect.MakeSlice(ptr.Elem().Type(), 0, len(docs))
	elemType := ptr.Elem().Type().Elem()
	for _, doc := range docs {
		elem := reflect.New(elemType)
		if err := decodeInto(doc, elem.Interface()); err != nil {
			return err
		}
		sliceVal = reflect.Append(sliceVal, elem.Elem())
	}
	ptr.Elem().Set(sliceVal)
	return nil
}
