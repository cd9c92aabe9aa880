package logger

// WrapperName is the fixed program name, used for log file naming and as the
// prefix of trouble messages.
const WrapperName = "clangfmt-wrapper"
