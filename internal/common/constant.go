package common

// SecurityCookieName is the platform session cookie that carries the
// publishing credential.
const SecurityCookieName = ".ROBLOSECURITY"

// CSRFTokenHeaderName is the header the platform uses for anti-forgery tokens,
// both when issuing them and when they are presented back.
const CSRFTokenHeaderName = "X-CSRF-TOKEN"

// DefaultUserAgent is sent on every platform request.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
