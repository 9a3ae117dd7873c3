package region

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func fakeClassifier(t *testing.T, ptr string, err error) *Classifier {
	c := New(Config{Servers: []string{"198.51.100.1:53"}, Timeout: time.Second}, nil, zaptest.NewLogger(t))
	c.lookup = func(context.Context, string) (string, error) { return ptr, err }
	return c
}

func TestClassifyTokyoZone(t *testing.T) {
	c := fakeClassifier(t, "ip-10-0-0-1.ap-northeast-1c.internal", nil)
	require.Equal(t, "AWS TOKYO ap-northeast-1c", c.Classify(context.Background(), "10.0.0.1"))
}

func TestClassifyTokyoNoZone(t *testing.T) {
	c := fakeClassifier(t, "ec2-54-249-0-1.ap-northeast-1.compute.amazonaws.com", nil)
	require.Equal(t, "AWS TOKYO ap-northeast-1?", c.Classify(context.Background(), "54.249.0.1"))
}

func TestClassifyLowercasesPTR(t *testing.T) {
	c := fakeClassifier(t, "HOST.AP-NORTHEAST-1B.EXAMPLE", nil)
	require.Equal(t, "AWS TOKYO ap-northeast-1b", c.Classify(context.Background(), "10.0.0.2"))
}

func TestClassifyUnmatchedTruncated(t *testing.T) {
	ptr := strings.Repeat("x", 60) + ".example.com"
	c := fakeClassifier(t, ptr, nil)
	got := c.Classify(context.Background(), "192.0.2.1")
	require.Len(t, got, 50)
	require.Equal(t, strings.ToLower(ptr)[:50], got)
}

func TestClassifyShortPTRUnchanged(t *testing.T) {
	c := fakeClassifier(t, "edge.example.net", nil)
	require.Equal(t, "edge.example.net", c.Classify(context.Background(), "192.0.2.2"))
}

func TestClassifyLookupFailure(t *testing.T) {
	c := fakeClassifier(t, "", errors.New("nxdomain"))
	require.Equal(t, NoPTR, c.Classify(context.Background(), "192.0.2.3"))
}

func TestCustomRuleOrder(t *testing.T) {
	rules := []Rule{
		{Marker: "eu-west-1", Label: "AWS DUBLIN eu-west-1"},
		{Marker: "eu-west", Label: "AWS EU eu-west"},
	}
	c := New(Config{Servers: []string{"198.51.100.1:53"}}, rules, zaptest.NewLogger(t))
	c.lookup = func(context.Context, string) (string, error) {
		return "ip.eu-west-1a.example", nil
	}
	require.Equal(t, "AWS DUBLIN eu-west-1a", c.Classify(context.Background(), "10.1.1.1"))
}
