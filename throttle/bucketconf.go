package throttle

import (
	"fmt"
	"time"
)

type BucketConf struct {
	Burst     int           // maximum number of tokens in the bucket
	Increment int           // how many tokens to add each period
	Period    time.Duration // how often to add Increment
}

func (c *BucketConf) Validate() error {
	if c.Burst <= 0 || c.Increment <= 0 || c.Period <= 0 {
		return fmt.Errorf("throttle: burst, increment and period must be positive (got %d, %d, %v)", c.Burst, c.Increment, c.Period)
	}
	return nil
}
