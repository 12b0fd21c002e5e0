package common

// CoreSchemas are run before any of the registered plugin schemas,
// uuid-ossp provides uuid_generate_v4 used for event and message primary keys
var CoreSchemas = []string{`
CREATE EXTENSION IF NOT EXISTS "uuid-ossp";
`}
