package database

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"modernc.org/sqlite" // SQLite thuần Go ("sqlite")
)

// sqliteLowerFunc là bản LOWER theo Unicode cho SQLite; LOWER gốc chỉ xử lý ASCII
const sqliteLowerFunc = "unicode_lower"

func init() {
	// hàm được gắn vào mọi kết nối sqlite mở sau thời điểm này
	if err := sqlite.RegisterDeterministicScalarFunction(sqliteLowerFunc, 1, unicodeLower); err != nil {
		panic(fmt.Sprintf("register %s: %v", sqliteLowerFunc, err))
	}
}

func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

// Lower trả về biểu thức chữ thường của expr theo Unicode cho dialect
func (d Dialect) Lower(expr string) string {
	if d == DialectSQLite {
		return sqliteLowerFunc + "(" + expr + ")"
	}
	return "LOWER(" + expr + ")"
}
