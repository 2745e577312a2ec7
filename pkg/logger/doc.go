// Package logger builds *slog.Logger values with functional options and
// provides attribute helpers with consistent keys.
//
// New returns a JSON logger at info level; options select the text format,
// the level, static attributes and context extractors:
//
//	log := logger.New(
//		logger.WithDevelopment("sanitize"),
//		logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
//			return logger.Language(i18n.GetLocale(ctx)), true
//		}),
//	)
//	log.WarnContext(ctx, "invalid filter value", logger.Bone("price"), logger.Error(err))
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed without a nil check.
package logger
