package load

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/tsgen/dialect"
)

const basic = `
datasource db {
  provider = "postgresql"
  url      = env("DATABASE_URL")
}

generator ts {
  provider = "tsgen"
}

enum Role {
  ADMIN  @map("admin")
  MEMBER
  LEGACY @ignore
}

model User {
  id        Int      @id @default(autoincrement())
  /// @zod(z.string().email())
  email     String   @unique
  name      String?
  role      Role     @default(ADMIN)
  createdAt DateTime @default(now())
  updatedAt DateTime @updatedAt
  payload   Json?
  posts     Post[]
  @@map("users")
}

model Post {
  id       Int    @id @default(autoincrement())
  title    String @default("untitled")
  author   User   @relation(fields: [authorId], references: [id])
  authorId Int
}

view ActiveUser {
  id    Int
  email String
}
`

func TestParse(t *testing.T) {
	snap, err := Parse(basic)
	require.NoError(t, err)
	assert.Equal(t, dialect.Prisma, snap.Dialect)
	require.Len(t, snap.Tables, 3)

	t.Run("enum filtering and aliasing", func(t *testing.T) {
		set := snap.EnumSet()
		role, ok := set.Lookup("Role")
		require.True(t, ok)
		// ADMIN is aliased by @map, LEGACY is dropped by @ignore.
		assert.Equal(t, []string{"admin", "MEMBER"}, role.Values)
	})

	t.Run("user model", func(t *testing.T) {
		user := snap.Tables[0]
		assert.Equal(t, "User", user.Name)
		assert.Equal(t, "users", user.Key())
		assert.False(t, user.View)

		names := make([]string, 0, len(user.Columns))
		for _, c := range user.Columns {
			names = append(names, c.Name)
		}
		// posts is relation-only and excluded.
		assert.Equal(t, []string{"id", "email", "name", "role", "createdAt", "updatedAt", "payload"}, names)

		id := user.Columns[0]
		assert.True(t, id.AutoGenerated)
		assert.Nil(t, id.Default)

		email := user.Columns[1]
		assert.Contains(t, email.Comment, "@zod(z.string().email())")
		assert.False(t, email.Nullable)

		name := user.Columns[2]
		assert.True(t, name.Nullable)

		role := user.Columns[3]
		assert.Equal(t, []string{"admin", "MEMBER"}, role.EnumValues)
		// The default follows the @map alias, never the declared identifier.
		require.NotNil(t, role.Default)
		assert.Equal(t, "admin", *role.Default)

		created, updated := user.Columns[4], user.Columns[5]
		assert.True(t, created.AutoGenerated)
		assert.Nil(t, created.Default)
		assert.True(t, updated.AutoGenerated)

		payload := user.Columns[6]
		assert.Equal(t, "Json", payload.RawType)
		assert.True(t, payload.Nullable)
	})

	t.Run("literal default", func(t *testing.T) {
		post := snap.Tables[1]
		title := post.Columns[1]
		require.NotNil(t, title.Default)
		assert.Equal(t, "untitled", *title.Default)
		assert.False(t, title.AutoGenerated)
	})

	t.Run("foreign key scalar survives, relation field does not", func(t *testing.T) {
		post := snap.Tables[1]
		names := make([]string, 0, len(post.Columns))
		for _, c := range post.Columns {
			names = append(names, c.Name)
		}
		assert.Equal(t, []string{"id", "title", "authorId"}, names)
	})

	t.Run("view is read-only", func(t *testing.T) {
		view := snap.Tables[2]
		assert.Equal(t, "ActiveUser", view.Name)
		assert.True(t, view.View)
		assert.Len(t, view.Columns, 2)
	})
}

func TestParseIgnored(t *testing.T) {
	t.Run("ignored model yields zero descriptors", func(t *testing.T) {
		snap, err := Parse(`
model Audit {
  id Int @id
  @@ignore
}

model Keep {
  id Int @id
}
`)
		require.NoError(t, err)
		require.Len(t, snap.Tables, 1)
		assert.Equal(t, "Keep", snap.Tables[0].Name)
	})

	t.Run("ignored field is absent", func(t *testing.T) {
		snap, err := Parse(`
model User {
  id     Int    @id
  secret String @ignore
}
`)
		require.NoError(t, err)
		require.Len(t, snap.Tables[0].Columns, 1)
		assert.Equal(t, "id", snap.Tables[0].Columns[0].Name)
	})

	t.Run("ignored enum is omitted from the set", func(t *testing.T) {
		snap, err := Parse(`
enum Status {
  A
  B
  @@ignore
}

model Job {
  id     Int    @id
  status Status
}
`)
		require.NoError(t, err)
		assert.Empty(t, snap.Enums)
		// The field keeps its raw type and no values; downstream it
		// behaves like any unrecognized type.
		status := snap.Tables[0].Columns[1]
		assert.Equal(t, "Status", status.RawType)
		assert.Nil(t, status.EnumValues)
	})
}

func TestParseErrors(t *testing.T) {
	t.Run("unterminated block", func(t *testing.T) {
		_, err := Parse("model User {\n  id Int @id\n")
		require.Error(t, err)
		assert.True(t, IsParseError(err))
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("unknown block kind", func(t *testing.T) {
		_, err := Parse("widget User {\n}\n")
		require.Error(t, err)
		assert.True(t, IsParseError(err))
	})

	t.Run("stray top-level line", func(t *testing.T) {
		_, err := Parse("id Int\n")
		require.Error(t, err)
		assert.True(t, IsParseError(err))
	})
}
