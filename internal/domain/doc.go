// Package domain contains the core business entities of the membership
// application: users, their subscription plans and the readings they have
// drawn. The reading rule engine itself lives in the oracle subpackage.
package domain
