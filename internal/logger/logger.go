package logger

import (
	"fmt"
	"time"
)

// Codes ANSI pour les couleurs
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorGray   = "\033[90m"
)

func timestamp() string {
	return time.Now().Format("15:04:05")
}

// Info log une information générale (bleu)
func Info(message string, args ...interface{}) {
	fmt.Printf("%s[%s]%s %s%s%s\n", ColorGray, timestamp(), ColorReset, ColorBlue, fmt.Sprintf(message, args...), ColorReset)
}

// Success log un succès (vert)
func Success(message string, args ...interface{}) {
	fmt.Printf("%s[%s]%s %s✓ %s%s\n", ColorGray, timestamp(), ColorReset, ColorGreen, fmt.Sprintf(message, args...), ColorReset)
}

// Warning log un avertissement (jaune)
func Warning(message string, args ...interface{}) {
	fmt.Printf("%s[%s]%s %s⚠ %s%s\n", ColorGray, timestamp(), ColorReset, ColorYellow, fmt.Sprintf(message, args...), ColorReset)
}

// Error log une erreur (rouge)
func Error(message string, args ...interface{}) {
	fmt.Printf("%s[%s]%s %s✗ %s%s\n", ColorGray, timestamp(), ColorReset, ColorRed, fmt.Sprintf(message, args...), ColorReset)
}
