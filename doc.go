// Package pageselect keeps track of rows selected across the pages of a
// paginated table.
//
// Overview
//
// A table only ever shows one page, and reports its selection as indices
// relative to that page. pageselect maintains the other side of the picture:
//   - GlobalSelection: absolute position in the ordered result set -> stable
//     identifier of the selected entity (or a placeholder when the identifier
//     is not known yet, see Tracker.SelectAll).
//   - RowSelection: page-relative index -> selected flag, the model handed back
//     to the table whenever the page changes.
//
// Key concepts
//   - Tracker: owns both models and keeps them consistent. The caller invokes
//     ReconcileFromPageModel when the table reports a selection change and
//     SetPagination when the page or page size changes.
//   - PageInfo: pagination state and the arithmetic between page-relative
//     indices and global positions.
//   - Resolver: optional follow-up that replaces "select all" placeholders with
//     real identifiers by reading the ordered result set through GORM.
//   - ZipDownloadLimit: the size check run over a selection before offering a
//     zip download.
package pageselect
