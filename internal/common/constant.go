package common

// DailyShakeLimit is the fixed number of qualifying shakes a user may
// record per local calendar day. Enforced locally by the quota tracker and
// authoritatively by the backend.
const DailyShakeLimit = 5

// AnonymousUserKey namespaces cached per-user state when the profile
// exposes neither an id nor an email.
const AnonymousUserKey = "anonymous"

// AccessTokenHeaderName is the HTTP header carrying the bearer token on
// outbound requests.
const AccessTokenHeaderName = "Authorization"
