package shift

import (
	"errors"
	"testing"

	"gorm.io/gorm"
)

func TestNoOpenShift(t *testing.T) {
	dbErr := errors.New("bağlantı reddedildi")

	tests := []struct {
		name     string
		err      error
		wantNone bool
		wantErr  error
	}{
		{name: "nilError", err: nil},
		{name: "recordNotFound", err: gorm.ErrRecordNotFound, wantNone: true},
		{name: "wrappedNotFound", err: errors.Join(errors.New("sorgu"), gorm.ErrRecordNotFound), wantNone: true},
		{name: "realError", err: dbErr, wantErr: dbErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			none, err := noOpenShift(tt.err)
			if none != tt.wantNone {
				t.Errorf("none = %v, want %v", none, tt.wantNone)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
