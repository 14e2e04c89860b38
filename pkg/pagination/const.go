package pagination

const DefaultPage = 1

// DefaultLimit is the page size used when the request does not set one.
const DefaultLimit = 10

const MaxLimit = 100
