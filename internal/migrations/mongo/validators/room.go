package validators

import "go.mongodb.org/mongo-driver/bson"

var RoomValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"room_number",
			"type",
			"capacity",
			"price_per_night",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"room_number": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 10,
			},

			"type": bson.M{
				"bsonType": "string",
				"enum":     []string{"Single", "Double", "Suite", "Family", "Deluxe"},
			},

			"floor": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},

			"capacity": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
				"maximum":  6,
			},

			"price_per_night": bson.M{
				"bsonType": []string{"double", "int", "long", "decimal"},
				"minimum":  0,
			},

			"beds": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"type", "count"},
					"properties": bson.M{
						"type":  bson.M{"enum": []string{"Single", "Double", "Queen", "King"}},
						"count": bson.M{"bsonType": []string{"int", "long"}, "minimum": 1},
					},
				},
			},

			"view": bson.M{
				"bsonType": "string",
				"enum":     []string{"City", "Garden", "Pool", "Mountain", "Interior"},
			},

			"status": bson.M{
				"bsonType": "string",
				"enum": []string{
					"available",
					"occupied",
					"maintenance",
					"reserved",
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
