package ports

// Logger receives the messages the indexer reports while it works.
// Debug is dropped unless the adapter runs at debug level.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(err error)
}
