// Package idosoms is the application shell for the IdosoMS elderly-care
// system: it tracks the remote authentication session, the authorization
// profile derived from it, and exposes the permission model the navigation
// layer enforces.
//
// Session lifecycle:
//   - Manager subscribes once to an external IdentityProvider and mirrors
//     its auth events into a SessionStore. The identity handle is replaced
//     wholesale on every event, never mutated in place, and the profile is
//     cleared atomically with it.
//   - Profiles live in a ProfileStore keyed by identity id. A missing
//     document is a normal outcome and yields a default profile with the
//     "agente" role and no municipality.
//
// Listener fan-out:
//   - Manager.OnAuthStateChange registers a listener and replays the
//     current identity synchronously so late subscribers never miss an
//     established session. Listener panics are logged and isolated so every
//     listener still gets its delivery.
//
// Authorization:
//   - The permission table is static and total: every PermissionName maps
//     to an explicit role allow-list and anything else is denied. Region
//     scoping is exact-match except for superadmin/admin, who see every
//     municipality.
package idosoms
