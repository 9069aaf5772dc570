package convert

type Option func(*Converter)

func WithShuffle(enabled bool) Option {
	return func(converter *Converter) {
		converter.shuffle = enabled
	}
}

func WithShuffleSeed(seed int64) Option {
	return func(converter *Converter) {
		converter.shuffleSeed = seed
	}
}

// WithProgressInterval sets how many images pass between progress lines
// (default 100). Zero or negative disables progress output.
func WithProgressInterval(images int) Option {
	return func(converter *Converter) {
		converter.progressInterval = images
	}
}
