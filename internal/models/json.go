package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// İç içe dokümanlar (modifier listeleri, opsiyon grupları, mutfak sayaçları vs.)
// text kolonlarında JSON olarak saklanır. Scan/Value implementasyonları bu iki
// yardımcıya delege eder.
func jsonValue(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonScan(dst interface{}, value interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("JSON kolonu çözümlenemedi: %T", value)
	}
}
