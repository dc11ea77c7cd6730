// Package models contains GORM persistence models that map to database tables.
// They are kept apart from the domain entities so the domain layer stays free
// of ORM tags; repositories convert with ToDomain / ...FromDomain.
//
// Tables:
//   - staff_members: StaffMemberModel
//   - sales_records: SalesRecordModel, unique per (staff_id, month, year)
package models
