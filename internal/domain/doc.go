// Package domain contains the core business entities of the garden tracker:
// users and their hortaliça (planting) records. Entities normalize and
// validate their own fields, independent of any storage or delivery mechanism.
package domain
