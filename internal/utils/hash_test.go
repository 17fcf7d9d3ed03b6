package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSHA256Hex_KnownVectors(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{in: "abc", want: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{in: "secret", want: "2bb80d537b1da3e38bd30361aa855686bde0eacd7162fef6a25fe97bf527a25b"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SHA256Hex(tt.in))
	}
}

func TestSHA256Hex_ConcurrentUse(t *testing.T) {
	// пул хешеров не должен смешивать состояния между горутинами
	want := SHA256Hex("payload")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Equal(t, want, SHA256Hex("payload"))
			}
		}()
	}
	wg.Wait()
}

func TestDigestsEqual(t *testing.T) {
	digest := SHA256Hex("secret")

	assert.True(t, DigestsEqual(digest, SHA256Hex("secret")))
	assert.False(t, DigestsEqual(digest, SHA256Hex("Secret")))
	assert.False(t, DigestsEqual(digest, digest[:32]))
	assert.True(t, DigestsEqual("", ""))
}
