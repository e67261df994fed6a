// Package service contains the application use cases: drawing readings under
// the weekly quota, and managing members and their plans.
//
// Services receive their stores through constructor injection and never
// depend on a concrete database implementation. Transactional boundaries are
// drawn here, using store.RunInTransaction and the stores' WithTx methods.
//
// Expected conditions surface as sentinel errors (ErrUserNotFound,
// ErrInvalidCredentials, ...); unexpected failures are wrapped in ServiceError
// so the API layer can log them and answer with a generic message.
package service
