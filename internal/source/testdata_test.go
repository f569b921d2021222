package source

const testBoxesJSON = `[
  {"code": "SE", "bounds": {"min_lon": 11.0, "min_lat": 55.3, "max_lon": 24.2, "max_lat": 69.1}},
  {"code": "", "bounds": {"min_lon": 0, "min_lat": 0, "max_lon": 1, "max_lat": 1}},
  {"code": "BAD", "bounds": {"min_lon": 5, "min_lat": 0, "max_lon": 1, "max_lat": 1}},
  {"code": "NO", "bounds": {"min_lon": 4.6, "min_lat": 57.9, "max_lon": 31.1, "max_lat": 71.2}}
]`

const testFeatureJSON = `{
  "type": "Feature",
  "properties": {"ADMIN": "Sweden", "ISO_A2": "SE"},
  "geometry": {"type": "Polygon", "coordinates": [[[11,55],[11,69],[24,69],[24,55],[11,55]]]}
}`
