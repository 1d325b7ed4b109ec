package redis

import "testing"

func TestKV_KeyIsNamespaced(t *testing.T) {
	kv := NewKV(nil)
	if got := kv.key("expenses"); got != "ledger:expenses" {
		t.Errorf("got %q", got)
	}
}
