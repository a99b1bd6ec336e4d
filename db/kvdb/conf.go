package kvdb

type Conf struct {
	Type   string `json:"type"` // redis
	Host   string `json:"host"`
	Port   int    `json:"port"`
	PW     string `json:"pw"`
	DB     int    `json:"db"`     // optional db number e.g. redis
	Prefix string `json:"prefix"` // prepended to every key the service writes
}

func (c *Conf) Key(name string) string {
	return c.Prefix + name
}
