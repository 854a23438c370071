package logging

import (
	"io"
	"testing"
)

func BenchmarkLoggers(b *testing.B) {
	logger, err := NewZapLogger(LogConfig{
		Level:  InfoLevel,
		Output: io.Discard,
	})
	if err != nil {
		b.Fatal(err)
	}

	b.Run("Simple", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			logger.Info("test message")
		}
	})

	b.Run("RequestLog", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			logger.Info("HTTP request completed",
				Field{"method", "POST"},
				Field{"path", "/webhooks/github"},
				Field{"status", 200},
				Field{"duration_ms", int64(3)},
			)
		}
	})

	b.Run("RejectionLog", func(b *testing.B) {
		err := io.EOF
		for i := 0; i < b.N; i++ {
			logger.Error("Rejected webhook delivery", err,
				Field{"provider", "stripe"},
				Field{"reason", "signature_mismatch"},
			)
		}
	})

	b.Run("FilteredOut", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			logger.Debug("verifier detail",
				Field{"provider", "github"},
			)
		}
	})
}
