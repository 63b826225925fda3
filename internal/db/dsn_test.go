package db

import "testing"

func TestNormalizeDSN(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@localhost:5432/pos?sslmode=disable", "postgres://u:p@localhost:5432/pos?sslmode=disable"},
		{"  \"postgresql://u:p@db/pos\"  ", "postgresql://u:p@db/pos"},
		{"host=localhost user=pos password=pos dbname=pos", "host=localhost user=pos password=pos dbname=pos sslmode=disable"},
		{"host=localhost   user=pos  sslmode=require", "host=localhost user=pos sslmode=require"},
		{"not a dsn at all", "not a dsn at all"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeDSN(c.in); got != c.want {
			t.Errorf("NormalizeDSN(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
