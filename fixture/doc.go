// Package fixture generates anonymous values for tests.
//
// A Fixture turns a request (see package request) into a value. Requests are
// satisfied, in order, by injected values (freeze and inject customizations,
// newest first), by registered constructors (picked by a ConstructorQuery),
// and by the built-in builders for Go kinds plus time.Time, time.Duration,
// uuid.UUID and ulid.ULID. Structs get their exported fields and SetX setters
// populated unless OmitAutoFields was requested for the type.
//
// Injected values are matched against the request and then against the
// requests it relays to (parameter or field, then seeded type, then bare
// type), so a value frozen for a type also reaches parameters, fields and
// setters of that type.
//
// A Fixture accumulates customizations and is not safe for concurrent use.
// Create one per test case; reusing one leaks frozen values across cases.
package fixture
