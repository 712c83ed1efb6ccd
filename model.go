package kali

import (
	"context"
	"reflect"
	"strconv"
	"strings"

	"github.com/gopsql/logger"
)

type (
	// Model describes the table an entity struct E is stored in. The table
	// name is taken from the TableName option, the TableName() method of E,
	// or the struct name converted by DefaultTableNamer. Column names are
	// taken from "column" tags or struct field names converted by
	// DefaultColumnNamer.
	//
	//	type User struct {
	//		ID       int64  `column:"id"`
	//		Username string
	//	}
	//	users := kali.NewModel[User](kali.TableName("users"))
	//	user, err := users.FetchOne(ctx, ex, 1)
	//
	// The primary key is the field tagged `column:",pk"` or, without such a
	// tag, the column named "id".
	Model[E any] struct {
		logger     logger.Logger
		structType reflect.Type
		*modelInfo
	}

	modelInfo struct {
		tableName  string
		fields     []Field
		primaryKey int
	}

	// TableName is a NewModel option that sets the table name.
	TableName string

	// Field is a persisted struct field.
	Field struct {
		Name       string // struct field name
		ColumnName string // column name in database
		DataType   string // data type in database, empty to derive it from the Go type
		PrimaryKey bool

		index []int
		typ   reflect.Type
	}
)

// NewModel creates the Model of struct E. Options can be a logger.Logger
// and a TableName. It panics if E is not a struct or has no primary key.
func NewModel[E any](options ...interface{}) *Model[E] {
	rt := reflect.TypeOf((*E)(nil)).Elem()
	if rt.Kind() != reflect.Struct {
		panic(usageErrorf("NewModel", "%s is not a struct", rt))
	}
	m := &Model[E]{
		structType: rt,
		modelInfo: &modelInfo{
			tableName:  ToTableName(new(E)),
			fields:     parseStruct(rt),
			primaryKey: -1,
		},
	}
	for i, f := range m.fields {
		if f.PrimaryKey {
			m.primaryKey = i
			break
		}
	}
	if m.primaryKey < 0 {
		for i, f := range m.fields {
			if f.ColumnName == "id" {
				m.fields[i].PrimaryKey = true
				m.primaryKey = i
				break
			}
		}
	}
	if m.primaryKey < 0 {
		panic(usageErrorf("NewModel", "%s has no primary key", rt))
	}
	m.SetOptions(options...)
	return m
}

func (m Model[E]) String() string {
	return `model (table: "` + m.tableName + `") has ` +
		strconv.Itoa(len(m.fields)) + " fields"
}

// TableName returns the table name of the Model.
func (m Model[E]) TableName() string {
	return m.tableName
}

// TypeName returns the struct name of E.
func (m Model[E]) TypeName() string {
	return m.structType.Name()
}

// Fields returns the persisted fields in struct order.
func (m Model[E]) Fields() []Field {
	return append([]Field(nil), m.fields...)
}

// Columns returns every column in struct order.
func (m Model[E]) Columns() []Col[E] {
	out := make([]Col[E], len(m.fields))
	for i, f := range m.fields {
		out[i] = Col[E](f.ColumnName)
	}
	return out
}

// PrimaryKey returns the primary key column.
func (m Model[E]) PrimaryKey() Col[E] {
	return Col[E](m.fields[m.primaryKey].ColumnName)
}

// Col returns the column with the given column name or struct field name.
// It panics if there is none.
func (m Model[E]) Col(name string) Col[E] {
	return Col[E](m.field(name).ColumnName)
}

func (m Model[E]) field(name string) *Field {
	for i, f := range m.fields {
		if f.ColumnName == name {
			return &m.fields[i]
		}
	}
	for i, f := range m.fields {
		if f.Name == name {
			return &m.fields[i]
		}
	}
	panic(usageErrorf(m.structType.Name(), "unknown column %q", name))
}

// Get returns the value of column c of e.
func (m Model[E]) Get(e E, c Col[E]) Value {
	f := m.field(string(c))
	return ValueOf(reflect.ValueOf(&e).Elem().FieldByIndex(f.index).Interface())
}

// PrimaryKeyValue returns the primary key value of e.
func (m Model[E]) PrimaryKeyValue(e E) Value {
	return m.Get(e, m.PrimaryKey())
}

// Clone returns a copy of the model.
func (m *Model[E]) Clone() *Model[E] {
	return &Model[E]{
		logger:     m.logger,
		structType: m.structType,
		modelInfo: &modelInfo{
			tableName:  m.tableName,
			fields:     m.fields,
			primaryKey: m.primaryKey,
		},
	}
}

// Quiet returns a copy of the model without logger.
func (m *Model[E]) Quiet() *Model[E] {
	return m.Clone().SetLogger(nil)
}

// SetOptions sets the logger (see SetLogger()) and/or the table name.
func (m *Model[E]) SetOptions(options ...interface{}) *Model[E] {
	for _, option := range options {
		switch o := option.(type) {
		case TableName:
			m.tableName = string(o)
		case logger.Logger:
			m.SetLogger(o)
		}
	}
	return m
}

// Logger returns the logger of the Model.
func (m *Model[E]) Logger() logger.Logger {
	return m.logger
}

// SetLogger sets the logger for the Model and every builder it creates. Use
// logger.StandardLogger for Go's built-in log package. By default no logger
// is used.
func (m *Model[E]) SetLogger(logger logger.Logger) *Model[E] {
	m.logger = logger
	return m
}

// Query returns a SELECT of every column of the table.
func (m *Model[E]) Query() *SelectBuilder[Col[E]] {
	return SelectFrom[Col[E]](m.tableName).SetLogger(m.logger).Columns(m.Columns()...)
}

// Insert returns an empty INSERT on the table.
func (m *Model[E]) Insert() *InsertBuilder[Col[E]] {
	return InsertInto[Col[E]](m.tableName).SetLogger(m.logger)
}

// InsertRecord returns an INSERT of e. Without columns, every column is
// inserted except a primary key holding its zero value, so the backend can
// assign it.
func (m *Model[E]) InsertRecord(e E, columns ...Col[E]) *InsertBuilder[Col[E]] {
	rv := reflect.ValueOf(&e).Elem()
	s := m.Insert()
	if len(columns) > 0 {
		for _, c := range columns {
			s.Values(Assignment[Col[E]]{Column: c, Value: m.Get(e, c)})
		}
		return s
	}
	for i, f := range m.fields {
		v := rv.FieldByIndex(f.index)
		if i == m.primaryKey && v.IsZero() {
			continue
		}
		s.Values(Assignment[Col[E]]{Column: Col[E](f.ColumnName), Value: ValueOf(v.Interface())})
	}
	return s
}

// Update returns an UPDATE on the table.
func (m *Model[E]) Update() *UpdateBuilder[Col[E]] {
	return Update[Col[E]](m.tableName).SetLogger(m.logger)
}

// Delete returns a DELETE on the table.
func (m *Model[E]) Delete() *DeleteBuilder[Col[E]] {
	return DeleteFrom[Col[E]](m.tableName).SetLogger(m.logger)
}

// FetchOne returns the row whose primary key is key. ErrNoRows is returned
// if there is none.
func (m *Model[E]) FetchOne(ctx context.Context, ex Executor, key interface{}) (e E, err error) {
	err = m.Query().Filter(m.PrimaryKey().Eq(key)).FetchOne(ctx, ex, &e)
	return
}

// FetchOptional is like FetchOne but reports a missing row with
// found == false.
func (m *Model[E]) FetchOptional(ctx context.Context, ex Executor, key interface{}) (e E, found bool, err error) {
	found, err = m.Query().Filter(m.PrimaryKey().Eq(key)).FetchOptional(ctx, ex, &e)
	return
}

// FetchAll returns every row of the table.
func (m *Model[E]) FetchAll(ctx context.Context, ex Executor) (out []E, err error) {
	out = []E{}
	err = m.Query().FetchAll(ctx, ex, &out)
	return
}

// DeleteOne deletes the row whose primary key is key and returns the
// number of rows affected.
func (m *Model[E]) DeleteOne(ctx context.Context, ex Executor, key interface{}) (int64, error) {
	return m.Delete().Filter(m.PrimaryKey().Eq(key)).Execute(ctx, ex)
}

// Schema generates the SQLite CREATE TABLE statement of the Model.
//
//	| Go Type                        | SQLite Data Type |
//	|--------------------------------|------------------|
//	| bool / int* / uint*            | INTEGER          |
//	| float32 / float64              | REAL             |
//	| []byte                         | BLOB             |
//	| time.Time                      | DATETIME         |
//	| string / other                 | TEXT             |
//
// An integer primary key becomes "INTEGER PRIMARY KEY", the alias of the
// rowid. Use the "dataType" tag to customize a column. "NOT NULL" is added
// if the struct field is not a pointer.
//
//	kali.NewModel[struct {
//		ID   int64
//		Name string
//		Age  *int
//	}](kali.TableName("users")).Schema()
//	// CREATE TABLE users (
//	//         "id" INTEGER PRIMARY KEY,
//	//         "name" TEXT DEFAULT '' NOT NULL,
//	//         "age" INTEGER DEFAULT 0
//	// );
func (m Model[E]) Schema() string {
	sql := make([]string, 0, len(m.fields))
	for _, f := range m.fields {
		dataType := f.DataType
		if dataType == "" {
			dataType = FieldDataType(f.typ, f.PrimaryKey)
		}
		var b strings.Builder
		b.WriteByte('\t')
		writeColumn(&b, Col[E](f.ColumnName))
		b.WriteByte(' ')
		b.WriteString(dataType)
		sql = append(sql, b.String())
	}
	return "CREATE TABLE " + m.tableName + " (\n" + strings.Join(sql, ",\n") + "\n);\n"
}

// DropSchema generates "DROP TABLE IF EXISTS <table_name>;".
func (m Model[E]) DropSchema() string {
	return "DROP TABLE IF EXISTS " + m.tableName + ";\n"
}

// FieldDataType returns the SQLite column definition for a Go type. It is
// used by Schema for fields without a "dataType" tag.
func FieldDataType(rt reflect.Type, primaryKey bool) (dataType string) {
	null := false
	if rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
		null = true
	}
	var defValue string
	switch rt.Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		dataType = "INTEGER"
		defValue = "0"
	case reflect.Float32, reflect.Float64:
		dataType = "REAL"
		defValue = "0.0"
	case reflect.Slice:
		if rt.Elem().Kind() == reflect.Uint8 {
			dataType = "BLOB"
			break
		}
		dataType = "TEXT"
		defValue = "''"
	default:
		if rt == timeType {
			dataType = "DATETIME"
			defValue = "CURRENT_TIMESTAMP"
			break
		}
		dataType = "TEXT"
		defValue = "''"
	}
	if primaryKey {
		if dataType == "INTEGER" && rt.Kind() != reflect.Bool {
			return "INTEGER PRIMARY KEY"
		}
		return dataType + " PRIMARY KEY NOT NULL"
	}
	if defValue != "" {
		dataType += " DEFAULT " + defValue
	}
	if !null {
		dataType += " NOT NULL"
	}
	return
}

func parseStruct(rt reflect.Type) []Field {
	return appendFields(nil, rt, nil)
}

func appendFields(fields []Field, rt reflect.Type, index []int) []Field {
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		idx := append(append([]int(nil), index...), i)

		columnName, options := f.Tag.Get("column"), ""
		if columnName == "-" {
			continue
		}
		if n := strings.Index(columnName, ","); n != -1 {
			columnName, options = columnName[:n], columnName[n+1:]
		}

		if f.Anonymous && columnName == "" && scansByField(f.Type) {
			fields = appendFields(fields, f.Type, idx)
			continue
		}
		if f.PkgPath != "" {
			continue // unexported fields cannot be scanned into
		}
		if columnName == "" {
			columnName = ToColumnName(f.Name)
		}

		field := Field{
			Name:       f.Name,
			ColumnName: columnName,
			DataType:   f.Tag.Get("dataType"),
			index:      idx,
			typ:        f.Type,
		}
		for _, o := range strings.Split(options, ",") {
			if strings.TrimSpace(o) == "pk" {
				field.PrimaryKey = true
			}
		}
		fields = append(fields, field)
	}
	return fields
}
