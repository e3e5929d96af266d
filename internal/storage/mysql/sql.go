package mysql

// A stay is identified by (hotel_name, location, check_in, check_out); the
// LAST_INSERT_ID(id) trick makes the upsert report the existing row's id on
// the duplicate path.
const upsertComparisonSQL = `
INSERT INTO hotel_comparisons
  (hotel_name, location, check_in, check_out, star_rating, description)
VALUES
  (?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  id          = LAST_INSERT_ID(id),
  star_rating = VALUES(star_rating),
  description = COALESCE(VALUES(description), hotel_comparisons.description),
  updated_at  = CURRENT_TIMESTAMP
`

// Observations are replaced wholesale on each scrape run: the run owns the
// full platform set for its comparison.
const deleteObservationsSQL = `
DELETE FROM price_observations WHERE comparison_id = ?
`

const insertObservationsPrefix = "INSERT INTO price_observations\n" +
	"  (comparison_id, platform, price_per_night, total_price, currency, screenshot_url, extracted)\nVALUES "

const insertMissSQL = `
INSERT INTO scrape_misses (platform, location, reason)
VALUES (?, ?, ?)
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const getComparisonSQL = `
SELECT
  id, hotel_name, location, check_in, check_out, star_rating, description
FROM hotel_comparisons
WHERE id = ?
`

const getObservationsSQL = `
SELECT
  id, comparison_id, platform, price_per_night, total_price, currency, screenshot_url, extracted
FROM price_observations
WHERE comparison_id = ?
ORDER BY platform
`

const listComparisonsSQL = `
SELECT
  id, hotel_name, location, check_in, check_out, star_rating, description
FROM hotel_comparisons
ORDER BY updated_at DESC, id DESC
LIMIT ?
`
