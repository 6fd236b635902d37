// Package core contains the admin toolbox domain records, collaborator
// contracts, filter and projection helpers, and the shared error taxonomy.
// Protocol packages depend on core; core must not depend on them.
package core
