package portfolio

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// NoopEventSink is a no-operation implementation of EventSink
// Useful for production when you don't need event handling or for testing
type NoopEventSink struct{}

// NewNoopEventSink creates a new no-operation event sink
func NewNoopEventSink() EventSink {
	return &NoopEventSink{}
}

func (n *NoopEventSink) ArtworkCreated(ctx context.Context, artwork *Artwork) error { return nil }

func (n *NoopEventSink) ArtworkDeleted(ctx context.Context, id uuid.UUID) error { return nil }

func (n *NoopEventSink) ExhibitionCreated(ctx context.Context, exhibition *Exhibition) error {
	return nil
}

func (n *NoopEventSink) ExhibitionDeleted(ctx context.Context, id uuid.UUID) error { return nil }

func (n *NoopEventSink) AboutInfoUpdated(ctx context.Context, info *AboutInfo) error { return nil }

// LoggingEventSink logs mutation events but takes no other action. It is the
// observability sink the HTTP server wires in by default.
type LoggingEventSink struct {
	logger *slog.Logger
}

// NewLoggingEventSink creates a new logging event sink
func NewLoggingEventSink(logger *slog.Logger) EventSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingEventSink{logger: logger}
}

func (l *LoggingEventSink) ArtworkCreated(ctx context.Context, artwork *Artwork) error {
	l.logger.Info("artwork created", "id", artwork.ID, "title", artwork.Title, "has_image", artwork.ImageURL != "")
	return nil
}

func (l *LoggingEventSink) ArtworkDeleted(ctx context.Context, id uuid.UUID) error {
	l.logger.Info("artwork deleted", "id", id)
	return nil
}

func (l *LoggingEventSink) ExhibitionCreated(ctx context.Context, exhibition *Exhibition) error {
	l.logger.Info("exhibition created", "id", exhibition.ID, "title", exhibition.Title, "start_date", exhibition.StartDate)
	return nil
}

func (l *LoggingEventSink) ExhibitionDeleted(ctx context.Context, id uuid.UUID) error {
	l.logger.Info("exhibition deleted", "id", id)
	return nil
}

func (l *LoggingEventSink) AboutInfoUpdated(ctx context.Context, info *AboutInfo) error {
	l.logger.Info("about info updated", "has_photo", info.ArtistPhotoURL != "")
	return nil
}
