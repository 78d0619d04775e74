// Package services holds the business logic behind the HTTP handlers.
//
// Services defined in this package:
//   - AuthService: registration, login, logout and session checks
//   - UserService: profile lookups
//   - StudyRequestService: posting and listing study partner requests
//   - NoteService: note uploads and listings
//   - TimetableService: per-user schedule storage
//   - AssistantService: the AI study assistant proxy
//   - DashboardService: the aggregate shown on the dashboard page
package services
