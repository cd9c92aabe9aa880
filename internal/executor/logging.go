package executor

import ilogger "clangfmt-wrapper/internal/logger"

func logInfo(msg string) { ilogger.LogInfo(msg) }

func logError(msg string) { ilogger.LogError(msg) }
