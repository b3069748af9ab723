// package repositories provides persistence layer implementations.
//
// The only durable state in the pipeline is catalog credential state;
// CredentialRepository implements the auth package's CredentialStore over
// sqlite so tokens survive process restarts.
package repositories
