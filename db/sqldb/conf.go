package sqldb

import "time"

type Conf struct {
	Type string `json:"type"` // pgsql, mysql
	Host string `json:"host"`
	Port int    `json:"port"`
	User string `json:"user"`
	PW   string `json:"pw"`
	DB   string `json:"db"`
	TZ   string `json:"tz"`  // Connection Timezone
	DSN  string `json:"dsn"` // To Overwrite Default DSN

	MaxConns        int      `json:"max_conns"`         // default 10
	ConnMaxLifetime Duration `json:"conn_max_lifetime"` // default 3m
}

func (c *Conf) PoolSize() int {
	if c.MaxConns <= 0 {
		return 10
	}
	return c.MaxConns
}

func (c *Conf) Lifetime() time.Duration {
	if c.ConnMaxLifetime <= 0 {
		return 3 * time.Minute
	}
	return time.Duration(c.ConnMaxLifetime)
}

// Duration reads "90s" / "3m" style strings from JSON config
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}
