package vo

import "time"

// Bucket is a half open response time range [From, To)
type Bucket struct {
	Name string
	From time.Duration
	To   time.Duration
}

func (b Bucket) Contains(d time.Duration) bool {
	return d >= b.From && d < b.To
}

type BucketList []Bucket

// GetBucketList response time ranges used by the performance report
func GetBucketList() BucketList {
	ms := time.Millisecond
	return BucketList{
		{Name: "fast", From: 0, To: 50 * ms},
		{Name: "good", From: 50 * ms, To: 200 * ms},
		{Name: "ok", From: 200 * ms, To: 500 * ms},
		{Name: "slow", From: 500 * ms, To: time.Second},
		{Name: "very slow", From: time.Second, To: 3 * time.Second},
		{Name: "broken", From: 3 * time.Second, To: 24 * time.Hour},
	}
}
