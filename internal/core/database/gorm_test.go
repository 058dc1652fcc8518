package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMySQLDSN(t *testing.T) {
	cases := []struct {
		name, in, user, pass, want string
	}{
		{
			name: "driver dsn gets clientFoundRows",
			in:   "app:pw@tcp(db:3306)/forum?parseTime=true",
			want: "app:pw@tcp(db:3306)/forum?parseTime=true&clientFoundRows=true",
		},
		{
			name: "driver dsn keeps explicit clientFoundRows",
			in:   "app:pw@tcp(db:3306)/forum?clientFoundRows=false",
			want: "app:pw@tcp(db:3306)/forum?clientFoundRows=false",
		},
		{
			name: "url form",
			in:   "mysql://app:pw@db:3306/forum",
			want: "app:pw@tcp(db:3306)/forum?charset=utf8mb4&clientFoundRows=true&parseTime=true",
		},
		{
			name: "jdbc with overrides",
			in:   "jdbc:mysql://db:3306/forum?useSSL=false&characterEncoding=utf8&useUnicode=true",
			user: "root", pass: "secret",
			want: "root:secret@tcp(db:3306)/forum?charset=utf8&clientFoundRows=true&parseTime=true&tls=false",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalizeMySQLDSN(tc.in, tc.user, tc.pass))
		})
	}
	assert.Equal(t, "", normalizeMySQLDSN("  ", "", ""))
}

func TestMaskDSN(t *testing.T) {
	assert.Equal(t, "app:****@tcp(db:3306)/forum", maskDSN("app:pw@tcp(db:3306)/forum"))
	assert.Equal(t, "tcp(db:3306)/forum", maskDSN("tcp(db:3306)/forum"))
}

func TestNewGormRejectsUnknownDriver(t *testing.T) {
	_, err := NewGorm(Opts{Driver: "oracle"})
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestNewGormSQLiteInMemory(t *testing.T) {
	db, err := NewGorm(Opts{Driver: "sqlite", DSN: "file::memory:?_pragma=foreign_keys(1)", LogLevel: "silent"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
}
