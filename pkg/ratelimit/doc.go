// Package ratelimit paces downloads.
//
// The downloader pauses for a fixed interval after every image it writes.
// FixedDelay implements that pause with an injectable sleep function so tests
// can record the requested delays instead of blocking:
//
//	var slept []time.Duration
//	pacer := &ratelimit.FixedDelay{
//	    Delay: time.Second,
//	    Sleep: func(ctx context.Context, d time.Duration) error {
//	        slept = append(slept, d)
//	        return nil
//	    },
//	}
package ratelimit
