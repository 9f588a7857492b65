package output

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWriterStreams(t *testing.T) {
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	w := New(out, errOut, false)

	w.Log("hello %s", "world")
	w.Success("done")
	w.Warn("careful")
	w.Error("boom")
	w.Print("raw line")

	assert.Contains(t, out.String(), "> hello world")
	assert.Contains(t, out.String(), "> Success! done")
	assert.Contains(t, out.String(), "> Warning! careful")
	assert.Contains(t, out.String(), "raw line")
	assert.Equal(t, "> Error! boom\n", errOut.String())
}

func TestDebugGatedByVerbose(t *testing.T) {
	errOut := new(bytes.Buffer)

	New(new(bytes.Buffer), errOut, false).Debug("hidden")
	assert.Empty(t, errOut.String())

	New(new(bytes.Buffer), errOut, true).Debug("shown %d", 7)
	assert.Contains(t, errOut.String(), "> [debug] shown 7")
}

func TestTableHeadersUppercased(t *testing.T) {
	got := Table([]string{"Domain", "Age"}, [][]string{{"example.com", "3d"}})
	assert.Contains(t, got, "DOMAIN")
	assert.Contains(t, got, "AGE")
	assert.Contains(t, got, "example.com")
}

func TestNameserverTablePadsShorterColumn(t *testing.T) {
	got := NameserverTable(
		[]string{"ns1.vercel-dns.com", "ns2.vercel-dns.com"},
		[]string{"ns1.example.com"},
	)
	assert.Contains(t, got, "INTENDED NAMESERVERS")
	assert.Contains(t, got, "CURRENT NAMESERVERS")
	assert.Contains(t, got, "ns2.vercel-dns.com")
	assert.Contains(t, got, "-")
}

func TestAge(t *testing.T) {
	now := time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "30s", Age(now.Add(-30*time.Second), now))
	assert.Equal(t, "5m", Age(now.Add(-5*time.Minute), now))
	assert.Equal(t, "3h", Age(now.Add(-3*time.Hour), now))
	assert.Equal(t, "10d", Age(now.Add(-10*24*time.Hour), now))
}
