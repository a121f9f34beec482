package types

type contextKey string

// ClientAppKey - ключ, под которым приложение кладется в контекст
// команды.
const ClientAppKey contextKey = "app"
