package wrapper

import executor "clangfmt-wrapper/internal/executor"

// Type aliases to keep the executor names usable in the wrapper package.
type InvocationConfig = executor.InvocationConfig
type FileResult = executor.FileResult
type Outcome = executor.Outcome
