package validators

import "go.mongodb.org/mongo-driver/bson"

// RoomNightSlotValidator keeps slot ids in the "<roomID>:<YYYY-MM-DD>" shape the
// unique _id index relies on.
var RoomNightSlotValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"room_id",
			"night",
			"reservation_id",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
				"pattern":  "^[0-9a-f]{24}:[0-9]{4}-[0-9]{2}-[0-9]{2}$",
			},

			"room_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"night": bson.M{
				"bsonType": "date",
			},

			"reservation_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},
		},
	},
}
