// Package query provides composable, in-memory relational operations over
// ordered slices of records: filtering, projection, ordering, paging,
// de-duplication, equi-joins, grouping, aggregation and quantifiers.
//
// Every operation is a pure function. Inputs are never modified and every
// sequence-returning operation allocates a fresh slice, so a record set can
// be shared freely between queries. Go methods cannot declare type
// parameters, so queries are composed by nesting calls:
//
//	top := query.Take(
//		query.OrderByFunc(
//			query.Filter(emps, func(e domain.Employee) bool { return e.DeptNo == 30 }),
//			func(e domain.Employee) decimal.Decimal { return e.Sal },
//			decimal.Decimal.Cmp,
//			query.Descending,
//		), 2)
//
// Operations that can fail report one of two sentinel errors, ErrInvalidArgument
// and ErrEmptyInput, wrapped with context. Test for them with errors.Is.
package query
