package relq_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	relq "github.com/relq-db/relq"
)

func TestS1AutoincrementInsertThenSelect(t *testing.T) {
	require := require.New(t)
	db := relq.NewDefault()
	_, err := db.Execute(`
		CREATE TABLE t ({key, autoincrement} id: INT32, {unique} login: STRING[8]);
		INSERT (login = "a") TO t;
		INSERT (login = "b") TO t;
	`)
	require.NoError(err)

	results, err := db.Execute(`SELECT * FROM t WHERE id > 0;`)
	require.NoError(err)
	res := results[0]
	it, err := res.Table.Iterator()
	require.NoError(err)

	var ids []int32
	var logins []string
	for it.HasValue() {
		r, err := it.Current()
		require.NoError(err)
		ids = append(ids, r.Slot(0).Scalar.I32)
		logins = append(logins, r.Slot(1).Scalar.Str)
		require.NoError(it.Advance())
	}
	require.Equal([]int32{1, 2}, ids)
	require.Equal([]string{"a", "b"}, logins)
}

func TestS2DuplicateUniqueRejectedTableUnchanged(t *testing.T) {
	require := require.New(t)
	db := relq.NewDefault()
	_, err := db.Execute(`
		CREATE TABLE t ({key, autoincrement} id: INT32, {unique} login: STRING[8]);
		INSERT (login = "a") TO t;
		INSERT (login = "b") TO t;
	`)
	require.NoError(err)

	_, err = db.Execute(`INSERT (login = "a") TO t;`)
	require.Error(err)

	results, err := db.Execute(`SELECT * FROM t WHERE true;`)
	require.NoError(err)
	it, err := results[0].Table.Iterator()
	require.NoError(err)
	count := 0
	for it.HasValue() {
		count++
		require.NoError(it.Advance())
	}
	require.Equal(2, count)
}

func TestS3OddLengthLoginsViaModulo(t *testing.T) {
	require := require.New(t)
	db := relq.NewDefault()
	_, err := db.Execute(`
		CREATE TABLE t ({key, autoincrement} id: INT32, {unique} login: STRING[8]);
		INSERT (login = "a") TO t;
		INSERT (login = "b") TO t;
	`)
	require.NoError(err)

	results, err := db.Execute(`SELECT login FROM t WHERE |login| % 2 = 1;`)
	require.NoError(err)
	it, err := results[0].Table.Iterator()
	require.NoError(err)
	var logins []string
	for it.HasValue() {
		r, err := it.Current()
		require.NoError(err)
		logins = append(logins, r.Slot(0).Scalar.Str)
		require.NoError(it.Advance())
	}
	require.Equal([]string{"a", "b"}, logins)
}

func TestS4InnerJoinAcrossTwoTables(t *testing.T) {
	require := require.New(t)
	db := relq.NewDefault()
	_, err := db.Execute(`
		CREATE TABLE u ({key} id: INT32, login: STRING[8]);
		CREATE TABLE p ({key} id: INT32, uid: INT32, title: STRING[8]);
		INSERT (id = 1, login = "a") TO u;
		INSERT (id = 2, login = "b") TO u;
		INSERT (id = 1, uid = 1, title = "x") TO p;
		INSERT (id = 2, uid = 1, title = "y") TO p;
		INSERT (id = 3, uid = 2, title = "z") TO p;
	`)
	require.NoError(err)

	results, err := db.Execute(`SELECT u.login AS user, p.title AS t FROM (u JOIN p ON u.id = p.uid) WHERE true;`)
	require.NoError(err)
	it, err := results[0].Table.Iterator()
	require.NoError(err)

	type pair struct{ user, title string }
	var got []pair
	for it.HasValue() {
		r, err := it.Current()
		require.NoError(err)
		got = append(got, pair{r.Slot(0).Scalar.Str, r.Slot(1).Scalar.Str})
		require.NoError(it.Advance())
	}
	require.Equal([]pair{{"a", "x"}, {"a", "y"}, {"b", "z"}}, got)
}

func TestS5DeleteThenSelect(t *testing.T) {
	require := require.New(t)
	db := relq.NewDefault()
	_, err := db.Execute(`
		CREATE TABLE t ({key, autoincrement} id: INT32, {unique} login: STRING[8]);
		INSERT (login = "a") TO t;
		INSERT (login = "b") TO t;
	`)
	require.NoError(err)

	_, err = db.Execute(`DELETE FROM t WHERE id = 1;`)
	require.NoError(err)

	results, err := db.Execute(`SELECT * FROM t WHERE true;`)
	require.NoError(err)
	it, err := results[0].Table.Iterator()
	require.NoError(err)
	require.True(it.HasValue())
	r, err := it.Current()
	require.NoError(err)
	require.Equal(int32(2), r.Slot(0).Scalar.I32)
	require.Equal("b", r.Slot(1).Scalar.Str)
	require.NoError(it.Advance())
	require.False(it.HasValue())
}

func TestUpdateIsRejectedAtExecution(t *testing.T) {
	require := require.New(t)
	db := relq.NewDefault()
	_, err := db.Execute(`CREATE TABLE t ({key} id: INT32);`)
	require.NoError(err)
	_, err = db.Execute(`UPDATE t SET id = 2 WHERE id = 1;`)
	require.Error(err)
}

func TestMultiStatementFailurePreservesPriorCommits(t *testing.T) {
	require := require.New(t)
	db := relq.NewDefault()
	results, err := db.Execute(`
		CREATE TABLE t ({key, autoincrement} id: INT32, {unique} login: STRING[8]);
		INSERT (login = "a") TO t;
		INSERT (login = "a") TO t;
	`)
	require.Error(err)
	require.Len(results, 2) // CREATE and the first INSERT both succeeded

	followUp, err := db.Execute(`SELECT * FROM t WHERE true;`)
	require.NoError(err)
	it, err := followUp[0].Table.Iterator()
	require.NoError(err)
	count := 0
	for it.HasValue() {
		count++
		require.NoError(it.Advance())
	}
	require.Equal(1, count)
}

func TestCreateTableAsSelectClonesRows(t *testing.T) {
	require := require.New(t)
	db := relq.NewDefault()
	_, err := db.Execute(`
		CREATE TABLE t ({key, autoincrement} id: INT32, {unique} login: STRING[8]);
		INSERT (login = "a") TO t;
		INSERT (login = "b") TO t;
		CREATE TABLE t2 AS t;
	`)
	require.NoError(err)

	results, err := db.Execute(`SELECT * FROM t2 WHERE true;`)
	require.NoError(err)
	it, err := results[0].Table.Iterator()
	require.NoError(err)
	count := 0
	for it.HasValue() {
		count++
		require.NoError(it.Advance())
	}
	require.Equal(2, count)
}
