// Package service holds the use cases of the garden tracker: registering and
// authenticating users, and managing their plantings.
//
// Services depend on the store interfaces, never on a concrete database.
// Operations that read and then write the same record run inside
// store.RunInTransaction with transaction-bound stores obtained from WithTx.
// Expected failures surface as sentinel errors (here, in store, or in domain)
// that the API layer maps to status codes.
package service
