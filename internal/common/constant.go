package common

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "journal_session"

// CSRFCookieName carries the anti-forgery token echoed back by every form.
const CSRFCookieName = "journal_csrf"

// FlashCookieName holds a one-shot message shown on the next rendered page.
const FlashCookieName = "journal_flash"

// DateLayout is the canonical storage and form layout for entry dates.
const DateLayout = "2006-01-02"
