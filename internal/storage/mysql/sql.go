package mysql

// Note: `text` is reserved; keep it quoted everywhere.
const insertReviewsPrefix = "INSERT INTO reviews\n  (line_no, restaurant, restaurant_key, `text`)\nVALUES "

// line_no is the natural key: re-ingesting the same corpus overwrites rows in place.
const insertReviewsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  restaurant     = VALUES(restaurant),\n" +
	"  restaurant_key = VALUES(restaurant_key),\n" +
	"  `text`         = VALUES(`text`),\n" +
	"  updated_at     = CURRENT_TIMESTAMP\n"

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// restaurant_key holds the lower-cased name, so equality is the
// case-insensitive exact match the file backend performs.
const listReviewsSQL = "SELECT line_no, restaurant, `text`\n" + `FROM reviews
WHERE restaurant_key = ?
ORDER BY line_no`

// First spelling of each name, in order of first appearance.
const listRestaurantsSQL = `
SELECT r.restaurant
FROM reviews r
JOIN (
  SELECT restaurant_key, MIN(line_no) AS first_line
  FROM reviews
  GROUP BY restaurant_key
) f ON f.first_line = r.line_no
ORDER BY f.first_line
`
