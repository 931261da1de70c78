package redis

import (
	"testing"
	"time"
)

func TestNextBackoff(t *testing.T) {
	tests := []struct {
		wait, max, want time.Duration
	}{
		{wait: time.Second, max: 10 * time.Second, want: 2 * time.Second},
		{wait: 4 * time.Second, max: 10 * time.Second, want: 8 * time.Second},
		{wait: 8 * time.Second, max: 10 * time.Second, want: 10 * time.Second},
		{wait: 10 * time.Second, max: 10 * time.Second, want: 10 * time.Second},
	}
	for _, tt := range tests {
		if got := nextBackoff(tt.wait, tt.max); got != tt.want {
			t.Errorf("nextBackoff(%v, %v) = %v, want %v", tt.wait, tt.max, got, tt.want)
		}
	}
}

func TestConnectOptionsValidate(t *testing.T) {
	valid := ConnectOptions{
		ConnectTimeout: time.Second,
		RetryInterval:  time.Millisecond,
		MaxWait:        time.Second,
		PingTimeout:    time.Second,
	}
	if err := valid.validate(); err != nil {
		t.Fatalf("validate() unexpected error: %v", err)
	}

	broken := []func(*ConnectOptions){
		func(o *ConnectOptions) { o.ConnectTimeout = 0 },
		func(o *ConnectOptions) { o.RetryInterval = 0 },
		func(o *ConnectOptions) { o.MaxWait = -1 },
		func(o *ConnectOptions) { o.PingTimeout = 0 },
		func(o *ConnectOptions) { o.WarnThreshold = -1 },
	}
	for i, mutate := range broken {
		o := valid
		mutate(&o)
		if err := o.validate(); err == nil {
			t.Errorf("case %d: validate() should fail", i)
		}
	}
}
