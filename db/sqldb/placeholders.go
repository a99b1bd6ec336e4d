package sqldb

import (
	"strconv"
	"strings"
)

var PlaceholderPrefixForDBType = map[string]byte{
	"mysql": '?',
	"pgsql": '$',
}

// ReplaceStaticPlaceholders numbers every `?` for dialects like pgsql
// (`?` -> `$1`, `$2`, ...). Question marks inside single-quoted literals are
// kept, and so is the `??` pair.
func ReplaceStaticPlaceholders(sql string, prefix byte) string {
	if prefix == '?' || prefix == 0 {
		return sql
	}
	var b strings.Builder
	b.Grow(len(sql) + 8)
	cnt := 1
	quoted := false
	for i := 0; i < len(sql); i++ {
		c := sql[i]
		switch {
		case c == '\'':
			quoted = !quoted
			b.WriteByte(c)
		case quoted || c != '?':
			b.WriteByte(c)
		case i+1 < len(sql) && sql[i+1] == '?':
			b.WriteString("??")
			i++
		default:
			b.WriteByte(prefix)
			b.WriteString(strconv.Itoa(cnt))
			cnt++
		}
	}
	return b.String()
}
